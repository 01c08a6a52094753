package surrender

import (
	bolt "go.etcd.io/bbolt"
)

const (
	// dbFileName is the name of the database file
	dbFileName string = "surrender.db"
	// bucketSettingsName will be used to store runtime settings edits
	bucketSettingsName string = "surrender_settings"
)

// SettingsStore is an interface that allow us to persist
// settings edited at runtime so they survive restarts.
// Vote state is never stored
type SettingsStore interface {
	// Close permits to close the store
	Close() error

	// SetSetting stores the raw value of the provided variable key
	SetSetting(key, value string) error

	// GetSettings returns all stored variable keys with their raw value
	GetSettings() (map[string]string, error)
}

// BoltOptions holds requirements to open the bolt database
type BoltOptions struct {
	// DataDir is the default data directory that will be used to store all data on the disk. It's required
	DataDir string

	// Options hold all bolt options
	Options *bolt.Options
}

// BoltStore is a SettingsStore backed by bbolt
type BoltStore struct {
	// dataDir is the data directory hosting the database
	dataDir string

	// db allows us to manipulate the k/v database
	db *bolt.DB
}
