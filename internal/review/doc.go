// Package review evaluates an article against guidelines using a completion provider.
//
// Every selected guideline yields exactly one Result, in input order. A failed
// completion never aborts the batch: it becomes an Outcome carrying the error and
// the fixed "Error occurred" / No / red fallback result.
package review
