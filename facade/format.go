package facade

import (
	"fmt"
	"strings"
)

// Format replaces the placeholders #1 through #9 in msg with the matching
// argument. A '#' not followed by a digit within range is kept as is.
//
//	Format("#1 failed after #2 attempts", "upload", 3) // "upload failed after 3 attempts"
func Format(msg string, args ...any) string {
	if !strings.Contains(msg, "#") {
		return msg
	}

	var (
		sb    strings.Builder
		isArg bool
	)

	sb.Grow(len(msg))

	for i := 0; i < len(msg); i++ {
		c := msg[i]

		switch {
		case isArg:
			isArg = false

			if n := int(c - '0'); c >= '1' && c <= '9' && n <= len(args) {
				sb.WriteString(fmt.Sprint(args[n-1]))

				continue
			}

			sb.WriteByte('#')
			sb.WriteByte(c)
		case c == '#':
			isArg = true
		default:
			sb.WriteByte(c)
		}
	}

	if isArg {
		sb.WriteByte('#')
	}

	return sb.String()
}
