package surrender

import (
	"fmt"
	"strconv"
	"strings"
)

// formatMessage replaces each {i} placeholder of template with args[i]
func formatMessage(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// plural returns unit with an s unless n is exactly 1
func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// formatTime renders seconds like "2 minutes and 1 second".
// Negative values render as an empty string
func formatTime(seconds int) string {
	if seconds < 0 {
		return ""
	}

	minutes := seconds / 60
	seconds %= 60

	var b strings.Builder
	if minutes > 0 {
		b.WriteString(plural(minutes, "minute"))
	}
	if seconds > 0 || minutes == 0 {
		if minutes > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(plural(seconds, "second"))
	}
	return b.String()
}
