// Package verification coordinates a single document check: it calls the
// registry through services.DocumentRepository on a background goroutine,
// then journals the answer, refreshes the offline snapshot and notifies
// observers.
//
// # States
//
//	Idle -> Verifying -> Succeeded | Failed -> Idle
//
// Only one verification runs at a time; Verify returns ErrBusy until the
// worker has persisted the answer and notified every observer.
// Storage failures while persisting are logged and never fail the check.
package verification
