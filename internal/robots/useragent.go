package robots

// isProductTokenChar reports whether b may appear in a user-agent product
// token: ASCII letters, digits, '-' and '_'.
func isProductTokenChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '-' || b == '_'
}

// IsValidUserAgent reports whether s is a non-empty product token made only
// of letters, digits, '-' and '_'. "Googlebot" and "My-Bot" are valid,
// "Bot/1.0" and "Foo Bar" are not.
//
// The matcher accepts invalid tokens anyway; callers decide whether to
// reject them.
func IsValidUserAgent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isProductTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// ProductToken returns the leading product token of s, e.g. "Googlebot" for
// "Googlebot/2.1". It returns "" when s does not start with a token character.
func ProductToken(s string) string {
	i := 0
	for i < len(s) && isProductTokenChar(s[i]) {
		i++
	}
	return s[:i]
}
