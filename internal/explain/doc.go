// Package explain calls the external language-model service to generate
// plain-language explanations of notebook cells.
//
// Each ExplanationRequest is driven through an explicit bounded state
// machine rather than an ad hoc retry loop:
//
//	Pending → Calling → {Success | Retrying → Calling | PermanentFailure}
//
// Transient failures (network errors, timeouts, rate limiting, server
// errors) retry with exponential backoff up to a fixed attempt ceiling;
// anything else, or an exhausted ceiling, is a permanent failure. A
// permanent failure produces a failure-status result — it never aborts
// the pipeline, so one bad cell cannot block the others.
//
// Calls for distinct cells are issued concurrently through a bounded pool
// and joined before the assembler runs. Results are keyed by cell index,
// so completion order never affects output order.
package explain
