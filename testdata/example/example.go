// Package example stands in for a companion tool whose usage text lives in
// its doc comment.
//
// Usage:
//
//	exampletool [flags] <input>
//
// Flags:
//
//	-n	print what would change without writing
package example

// Marker exists so the package has an exported identifier; the tests only
// care about the doc comment above.
const Marker = "example"
