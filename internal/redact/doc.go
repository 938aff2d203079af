// Package redact strips secrets from review payloads before they leave the
// machine.
//
// Two mechanisms stack. A pattern pass replaces recognizable secret shapes
// with [REDACTED]: cloud and model provider keys, forge and chat tokens,
// connection strings with inline credentials, bearer tokens, JWTs, private
// key blocks, and generic key-material assignments. A path policy drops the
// whole content of files matching configured globs (.env files, key
// material, anything named like secrets) so their layout is not leaked
// either.
//
// The pattern pass runs twice for codebase reviews: once per file before
// bundling, and once more over the assembled payload inside the engine, so
// manifest text and diff headers get the same treatment as file bodies.
package redact
