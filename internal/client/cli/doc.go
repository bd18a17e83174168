// Package cli provides the interactive document verifier.
//
// It wires configuration, local storage, the registry client and an
// interactive REPL that keeps working while the registry is unreachable.
// Lookups that fail for transport reasons are queued and replayed by a
// background syncer once the connectivity watcher sees the registry again.
//
// Key features:
//   - Verify / Fetch documents, with the last known snapshot shown offline
//   - History, search, statistics and JSON export, optionally PIN-locked
//   - Document types and verification templates from the registry
//   - Offline cache inspection and manual sync
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
