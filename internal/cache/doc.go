// Package cache provides a file-based cache for model review responses.
//
// Entries are keyed by a SHA-256 hash of the model name and the full prompt,
// so identical review runs skip the model call entirely while any change to
// the inputs produces a miss. Each entry stores the raw response string with
// a creation timestamp and a TTL in seconds; a read that finds an expired
// entry reports a miss and deletes the file. A zero TTL never expires.
//
// The default cache directory is $XDG_CACHE_HOME/revet (or the
// OS-appropriate equivalent). Payloads reach the cache after secret
// redaction, never before.
package cache
