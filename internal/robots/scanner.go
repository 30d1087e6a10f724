package robots

import (
	"iter"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// utf8BOM is skipped at the start of the input, also when only partially present.
var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

// Line is one logical line of a robots.txt file.
type Line struct {
	// Number is 1-based.
	Number int

	// Text is the decoded line without its terminator. Invalid UTF-8
	// sequences are replaced with U+FFFD.
	Text string

	// TooLong reports that the line was truncated.
	TooLong bool
}

// Lines splits body into lines using the default line length limit.
// "\n", "\r" and "\r\n" each end one line. The sequence may be ranged over
// any number of times.
func Lines(body []byte) iter.Seq[Line] {
	return scanLines(body, defaultConfig().maxLineLength)
}

func scanLines(body []byte, maxLen int) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		data := body[bomLength(body):]
		number := 0
		for start := 0; start < len(data); {
			end := start
			for end < len(data) && data[end] != '\n' && data[end] != '\r' {
				end++
			}
			number++
			if !yield(makeLine(number, data[start:end], maxLen)) {
				return
			}
			if end == len(data) {
				return
			}
			if data[end] == '\r' && end+1 < len(data) && data[end+1] == '\n' {
				end++
			}
			start = end + 1
		}
	}
}

// bomLength returns how many leading bytes of body belong to a (possibly
// partial) UTF-8 byte order mark.
func bomLength(body []byte) int {
	n := 0
	for n < len(utf8BOM) && n < len(body) && body[n] == utf8BOM[n] {
		n++
	}
	return n
}

// makeLine keeps fewer than maxLen bytes of raw.
func makeLine(number int, raw []byte, maxLen int) Line {
	line := Line{Number: number}
	if len(raw) >= maxLen {
		raw = raw[:maxLen-1]
		line.TooLong = true
	}
	line.Text = decodeLine(raw)
	return line
}

func decodeLine(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	s, _, err := transform.String(runes.ReplaceIllFormed(), string(raw))
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return s
}
