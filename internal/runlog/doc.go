// Package runlog keeps a SQLite ledger of stage executions so operators can
// review what each scheduled run processed, produced, and rejected.
//
// The database lives at paths.run_ledger and uses WAL journaling with a busy
// timeout. Writes retry briefly on SQLITE_BUSY so a `draftline history` read
// never fails a concurrently finishing run.
package runlog
