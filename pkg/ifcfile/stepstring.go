package ifcfile

import (
	"encoding/hex"
	"strings"
	"unicode/utf16"
)

// decodeSTEPString removes the quotes of a STEP string literal and
// resolves the ISO-10303-21 control directives \X\, \X2\, \X4\ and \S\.
func decodeSTEPString(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "''", "'")
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, `\X2\`):
			end := strings.Index(rest, `\X0\`)
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			b.WriteString(decodeHex(rest[4:end], 4))
			i += end + 4
		case strings.HasPrefix(rest, `\X4\`):
			end := strings.Index(rest, `\X0\`)
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			b.WriteString(decodeHex(rest[4:end], 8))
			i += end + 4
		case strings.HasPrefix(rest, `\X\`) && len(rest) >= 5:
			if d, err := hex.DecodeString(rest[3:5]); err == nil {
				b.WriteRune(rune(d[0]))
				i += 5
			} else {
				b.WriteByte(s[i])
				i++
			}
		case strings.HasPrefix(rest, `\S\`) && len(rest) >= 4:
			b.WriteRune(rune(rest[3]) + 128)
			i += 4
		case strings.HasPrefix(rest, `\\`):
			b.WriteByte('\\')
			i += 2
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

func decodeHex(s string, width int) string {
	var units []uint16
	var b strings.Builder
	for i := 0; i+width <= len(s); i += width {
		d, err := hex.DecodeString(s[i : i+width])
		if err != nil {
			return s
		}
		if width == 4 {
			units = append(units, uint16(d[0])<<8|uint16(d[1]))
		} else {
			b.WriteRune(rune(uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])))
		}
	}
	if width == 4 {
		return string(utf16.Decode(units))
	}
	return b.String()
}
