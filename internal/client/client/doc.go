// Package client talks to the document registry over HTTP.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): Verify,
//     Fetch, DocumentTypes, Templates and Ping.
//  2. Two implementations sharing one retrying transport: RESTClient for the
//     /v1 API and LegacyClient for the envelope-style backend
//     ({status:"ok",data} / {status:"error",message}).
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     opening SQLite and applying the embedded goose migrations.
//
// # Outcomes
//
// Verify and Fetch never return a bare error. Every call yields an Outcome
// whose Category tells a completed round trip (Success, NotFound,
// Unauthorized) apart from a failure (Transient, Malformed, Canceled).
// Outcome.Err returns a *TransportError only for failures.
//
// # Retries
//
// Transient failures (timeouts, connection errors, 5xx and other unexpected
// statuses) are retried with capped exponential backoff, see RetryPolicy.
// All attempts of one call share an X-Request-ID. Cancellation of the
// context is honored between attempts and while waiting.
package client
