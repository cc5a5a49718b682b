// Package archive provides SQLite-backed storage for completed search runs.
//
// The archive is append-only: a run is written once, with its configuration
// snapshot, summary statistics, and full ranked result set, and never
// updated. Reads use fixed ORDER BY clauses so listings and replay
// comparisons are deterministic across processes.
//
// Replay re-executes an archived configuration and verifies the stored
// result set is reproduced bit-for-bit (error bits, quantized value, and
// rendered text per rank). A mismatch means the engine's determinism
// contract was broken between the original run and now.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: results rows always belong to a run
package archive
