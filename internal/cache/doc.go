// Package cache provides SQLite-backed storage for explanation results.
//
// Explanation calls are the slow, billable part of a run, and notebooks
// rarely change between pushes. The cache keys each result by a hash of
// the model identifier and prompt text, so an unchanged cell is served
// from disk on the next run instead of hitting the service again.
// Only successful results are stored; failures are always retried.
package cache
