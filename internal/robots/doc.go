// Package robots parses robots.txt files and decides whether a crawler may
// fetch a URL.
//
// The pipeline is a pure function of its inputs:
//
//	bytes -> Lines -> Directives -> BuildGroups -> Robots.Match
//
// Malformed input never produces an error. Lines that cannot be understood
// are skipped and reported as diagnostics on the parse result, so a single
// broken line never affects the directives around it.
//
// A Matcher holds only options and a Robots holds only an immutable parse
// result; both are safe for concurrent use.
package robots
