// Package selector decides which notebook cells are worth explaining.
//
// Every language-model call costs money and time, so the selector bounds
// usage: only code and markdown cells with non-trivial content are sent,
// binary outputs never are (they are preserved unchanged by the assembler).
// Selection is deterministic: the same cell sequence and threshold always
// yield the same requests.
package selector
