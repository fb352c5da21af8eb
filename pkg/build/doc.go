// Package build turns extracted facts into [graph.Graph] values.
//
// Two builders share one accumulator:
//
//   - [BuildCode] scans source records with [extract.Extract] and links each
//     file to the specifiers it references (file → module/header).
//   - [BuildContributors] aggregates pull-request records into reviewer → author
//     edges with per-login counters.
//
// Both builders own their node and edge containers for the duration of the
// call and return an independent snapshot; no partially built graph escapes.
// Malformed records (empty paths, missing logins, null timestamps) are skipped
// rather than reported.
//
// # Code Mode Knobs
//
// Which specifiers become nodes is controlled by [Scope]. The default,
// [ScopeAll], keeps every non-asset target. Edges are not deduplicated unless
// [CodeOptions.DedupeEdges] is set, so a file importing the same target twice
// yields two edges with the same ID.
//
// # Contributor Mode Policy
//
// A review by the PR author is ignored entirely: it adds no edge and does not
// count toward reviewCount. Edges are unique per (reviewer, author) pair.
package build
