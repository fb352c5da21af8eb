// Package extract scans source text for module and include references.
//
// # Overview
//
// [Extract] is a best-effort, comment-aware scanner. It does not build a syntax
// tree and does not resolve specifiers to files; it strips comments and then
// runs four independent pattern families over the remaining text:
//
//   - static imports: import x from "t", import { a, b } from "t", import "t"
//   - dynamic imports: import("t"), await import("t")
//   - CommonJS requires: require("t")
//   - C preprocessor includes: #include "t", #include <t>
//
// Results are grouped by family in that order and, within a family, appear in
// source order. Repeated references produce repeated entries; deduplication is
// the caller's decision.
//
// # Filters
//
// Type-only imports (import type { T } from "t") are dropped because they carry
// no runtime dependency. Targets ending in a style sheet or image extension
// (see [IsAsset]) are dropped too.
//
// # Accuracy
//
// The scanner over- and under-matches on adversarial input: import-like text in
// string literals is reported, and a "//" inside a string truncates the rest of
// that line. This is accepted for a visualization tool.
//
// # Concurrency
//
// Extract is a pure function over its arguments and is safe to call from many
// goroutines at once.
package extract
