// Package repositories implements SQLite persistence for the local verdict log.
//
// Every completed check appends its verdicts here, giving the CLI a history
// that can be listed, filtered, and cleared without re-querying the service.
// The log is append-and-overwrite: a track checked twice keeps one row with
// the most recent verdict. It is never consulted to answer a query, so a
// stale row can only ever affect history output, not results.
//
// All repositories support soft deletes via deleted_at timestamps and exclude
// deleted records from queries by default.
//
// Sequence numbers provide stable, human-readable ordering (e.g., verdict #42)
// independent of UUIDs and creation timestamps. The [NextSequence] function
// atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
