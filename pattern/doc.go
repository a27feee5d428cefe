// Package pattern decides whether a subtree name is admitted by an
// include or exclude specification.
//
// A Pattern is one of three shapes: a comma separated list ("A,B,C"), an
// ordered sequence of names, or a regular expression. The zero Pattern is
// unset and admits nothing.
package pattern
