// Package dirtally resolves a root directory and audits it in one
// recursive walk, mapping every directory under the root to the number
// of regular files directly inside it.
//
// Directories without any files still appear in the result, and the
// grand total always equals the sum of the per-directory counts.
package dirtally
