// Package registry owns the active/solved puzzle partitions and their
// durable snapshot.
//
// The registry is constructed empty or loaded from a snapshot at startup and
// mutated only through its operations. Every mutating operation persists a
// full snapshot synchronously before returning; if the write fails the
// in-memory state is rolled back and the mutation reports failure, so a
// caller is never told a change was durable when it was not.
//
// Snapshot writes go to a temporary file in the target directory and are
// renamed into place, so a reader of the snapshot file can never observe a
// truncated write.
//
// Concurrency: reads may run concurrently with each other but never with a
// mutation; all state is guarded by a single RWMutex.
package registry
