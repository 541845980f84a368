package vm

import (
	"strconv"
	"strings"
)

// Inspect renders a value for display: ints in decimal, floats as the
// shortest decimal (with ".0" when integral), strings quoted, null as "null".
func Inspect(v Value, table *StringTable) string {
	switch v.Kind {
	case VKInt:
		return strconv.FormatInt(v.Int, 10)
	case VKFloat:
		return formatFloat(v.F)
	case VKBool:
		return strconv.FormatBool(v.Bool)
	case VKString:
		s, ok := table.Lookup(v.Str)
		if !ok {
			return "<invalid string>"
		}
		return strconv.Quote(s)
	}
	return "null"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}
