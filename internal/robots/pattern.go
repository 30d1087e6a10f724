package robots

import "strings"

const upperHex = "0123456789ABCDEF"

// normalizePattern prepares an Allow or Disallow value for matching. Runs
// of '*' collapse to one, and a '$' that does not end the pattern is taken
// literally.
func normalizePattern(pattern string) string {
	return normalizeOctets(pattern, true)
}

// normalizePath prepares a URL path for matching against normalised
// patterns. The path's own '*' and '$' are literal characters.
func normalizePath(path string) string {
	return normalizeOctets(path, false)
}

// normalizeOctets brings s into the comparison form shared by patterns and
// paths:
//   - octets >= 0x80 are percent-escaped
//   - escapes get upper-case hex digits
//   - escapes of unreserved characters (ALPHA DIGIT - . _ ~) are decoded
//   - other escapes stay encoded, so "%2F" never equals "/"
//
// Literal '*' and '$' are encoded as "%2A" and "%24" where they carry no
// special meaning, which lets "%2A" in a rule match a '*' in a URL.
func normalizeOctets(s string, pattern bool) string {
	if isNormalized(s, pattern) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	prevStar := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			v := unhex(s[i+1])<<4 | unhex(s[i+2])
			if isUnreserved(v) {
				b.WriteByte(v)
			} else {
				writeEscape(&b, v)
			}
			i += 2
		case c >= 0x80:
			writeEscape(&b, c)
		case c == '*' && pattern:
			if prevStar {
				continue
			}
			b.WriteByte(c)
			prevStar = true
			continue
		case c == '*':
			writeEscape(&b, c)
		case c == '$' && (!pattern || i != len(s)-1):
			writeEscape(&b, c)
		default:
			b.WriteByte(c)
		}
		prevStar = false
	}
	return b.String()
}

// isNormalized reports whether normalizeOctets would return s unchanged.
func isNormalized(s string, pattern bool) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 0x80, c == '%':
			return false
		case c == '*':
			if !pattern || (i > 0 && s[i-1] == '*') {
				return false
			}
		case c == '$':
			if !pattern || i != len(s)-1 {
				return false
			}
		}
	}
	return true
}

func writeEscape(b *strings.Builder, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperHex[c>>4])
	b.WriteByte(upperHex[c&0x0F])
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// isUnreserved reports whether c is in the RFC 3986 unreserved set.
func isUnreserved(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// Match reports whether a normalised pattern matches a normalised path.
//
// '*' matches any sequence of octets, including none. A trailing '$'
// anchors the pattern at the end of the path; without it the pattern only
// has to match a prefix. Comparison is case-sensitive.
//
// The scan keeps one backtrack point, the most recent '*', so the cost is
// bounded by len(pattern)*len(path) and is linear for typical rules.
func Match(pattern, path string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = pattern[:len(pattern)-1]
	}

	p, s := 0, 0
	star, mark := -1, 0
	for {
		if p == len(pattern) {
			if !anchored || s == len(path) {
				return true
			}
		} else if pattern[p] == '*' {
			star, mark = p, s
			p++
			continue
		} else if s < len(path) && pattern[p] == path[s] {
			p++
			s++
			continue
		}

		if star < 0 || mark >= len(path) {
			return false
		}
		mark++
		p, s = star+1, mark
	}
}
