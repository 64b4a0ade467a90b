// Package subobject projects nested values down to the fields named by a
// selector tree.
//
// A selector tree is a list of Selector values. Each selector names a key
// to keep and may carry a child list describing how to filter the value
// found at that key:
//
//	selectors := subobject.MustParse("id,owner(name,email),tags")
//	out := subobject.Build(selectors, doc)
//
// Build walks the input in lock-step with the tree:
//   - sequences are projected element by element with the same selectors;
//   - maps keep only the selected keys, recursing where children are given;
//   - anything else is returned unchanged.
//
// Selector syntax errors are reported as *ParsingError, which carries the
// offending span and can render it highlighted with ANSI escapes.
package subobject
