// Package config loads and merges revet configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (OPENAI_API_KEY, OPENAI_MODEL, GITHUB_TOKEN,
//     GITHUB_REPOSITORY, PR_NUMBER, REVET_FAIL_ON, etc.)
//  3. Repository config file (.revet.json at the review root)
//  4. Built-in defaults
//
// Credentials never come from the file and are never written to it.
// [Config.Require] validates that everything the requested operations need
// is present before any network call is made; its failure is a
// *[MissingError] listing the absent settings by name.
package config
