package robots

// specificity ranks a candidate in both selection steps of a match: the
// agent token of a group and the pattern of a rule. Longer wins, then
// preferred, then the candidate seen first in the file.
type specificity struct {
	length    int
	preferred bool
	order     int
}

// noMatch ranks below every real candidate.
var noMatch = specificity{length: -1}

func (a specificity) beats(b specificity) bool {
	if a.length != b.length {
		return a.length > b.length
	}
	if a.preferred != b.preferred {
		return a.preferred
	}
	return a.order < b.order
}

// sameRank reports whether a and b differ only in file order.
func (a specificity) sameRank(b specificity) bool {
	return a.length == b.length && a.preferred == b.preferred
}
