package robots

import "strings"

// PathFromURL returns the part of url that rules are matched against: the
// path, params and query, without scheme, authority or fragment. The result
// always starts with '/'.
//
//	http://example.com/a/b?c=d#e  ->  /a/b?c=d
//	example.com?a                 ->  /?a
//	//host/b/c                    ->  /b/c
//	""                            ->  /
//
// A leading segment without a scheme is read as an authority, so "a/b"
// yields "/b".
func PathFromURL(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}

	rest := url
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
	} else if i := strings.Index(rest, "://"); i >= 0 && !strings.ContainsAny(rest[:i], "/?") {
		rest = rest[i+3:]
	}

	start := strings.IndexAny(rest, "/?")
	if start < 0 {
		return "/"
	}
	path := rest[start:]
	if path[0] == '?' {
		return "/" + path
	}
	return path
}
