// Package catalog records index build history in SQLite: one row per build
// run plus per-file outcomes. The catalog is informational — builds succeed
// even when recording fails — and is queried by the `signdex runs` command.
package catalog
