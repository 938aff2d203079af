// Package review contains the core types and engine for LLM-based code
// review.
//
// It defines the Improvement and ReviewResult types with their enum
// validation, the fixed prompt templates for the three review modes
// (structured, freeform, diff), and [ExtractResult], which peels <think>
// blocks, code fences, and surrounding prose off a model reply before
// parsing and validating the JSON contract.
//
// [Run] drives one invocation end to end: secret redaction, prompt
// assembly, the response cache, the model call with retries, and, for
// structured mode, extraction. Extraction failures are terminal; the model
// is never re-asked to fix its own malformed reply.
package review
