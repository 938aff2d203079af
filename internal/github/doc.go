// Package github provides a minimal GitHub REST API client for publishing
// reviews: issues for codebase reviews, issue comments for PR reviews, and
// the pull-request files API for retrieving the diff under review.
//
// [DetectRepo] resolves "owner/name" from the local git remote when the
// repository is not configured explicitly. [AssembleDiff] turns the files
// API response into the unified diff the model reviews, and [DiffStats]
// reports its size in added and deleted lines.
package github
