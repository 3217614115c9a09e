// Package notebook parses Jupyter notebook documents (nbformat v4).
//
// The parser loads a .ipynb file and produces an ordered cell sequence with
// all execution outputs preserved: text outputs verbatim, binary outputs
// (embedded figures) byte-for-byte. It also detects the machine-learning
// technique a notebook demonstrates from keyword scans of its code cells.
//
// Design decision: We implement the nbformat decoding by hand on top of
// encoding/json rather than depending on a notebook library because the
// format is small, stable JSON and we only consume a fraction of it. The
// quirks (multiline sources as string arrays, mime bundles) are isolated
// in unmarshal helpers here so nothing downstream sees them.
package notebook
