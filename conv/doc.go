// Package conv converts scanned JSON scalar lexemes into typed Go values.
// It supports strings, booleans, fixed-width and arbitrary precision numbers,
// date/time values parsed with field patterns, enums bound by name and
// untyped dynamic values.
package conv
