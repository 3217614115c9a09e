// Package assemble merges a parsed notebook with its explanation results
// into a render-ready page.
//
// The assembler's invariant is structural: every input cell maps to
// exactly one output section, in original order, whether or not its
// explanation succeeded or was ever requested. Binary outputs pass
// through as section assets, untouched.
package assemble
