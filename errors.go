package surrender

import "errors"

var (
	ErrHostRequired       = errors.New("host is required")
	ErrUnknownVariable    = errors.New("unknown variable")
	ErrInvalidValue       = errors.New("invalid value")
	ErrMissingPlaceholder = errors.New("message template is missing a placeholder")
	ErrMessageTooLong     = errors.New("message too long")
	ErrDataDirRequired    = errors.New("data dir is required")
	ErrKeyNotFound        = errors.New("key not found")
	ErrStoreClosed        = errors.New("store closed")
	ErrNoServerInfo       = errors.New("no server info received yet")
	ErrNoTicketBaseline   = errors.New("start ticket count is not set")
	ErrPlayerNotFound     = errors.New("player not found in roster")
)
