// Package bundle serializes collected files into a single model payload
// under a byte budget.
//
// Two formats are supported: plain (fenced code blocks, used for freeform
// reviews) and annotated (an XML file manifest plus per-file metadata
// blocks, used for structured reviews). When the budget is exceeded the
// payload ends with a truncation marker stating exactly how many files were
// left out, and the [Bundle] accounting reports the same number.
package bundle
