// Package llm is a thin client for OpenAI-compatible chat completion APIs.
//
// [Client.Complete] sends a single-message prompt and returns the assistant
// text with token usage. Every transport failure is treated as transient:
// network errors, non-200 statuses, and unparseable or empty response bodies
// are all retried under the client's [Policy] (3 attempts, exponential
// backoff) before the final error is surfaced as a [TransportError].
//
// The HTTP client, the backoff sleeper, and the telemetry writer are all
// injectable so tests can run against httptest servers without real delays.
package llm
