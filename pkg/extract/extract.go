package extract

import (
	"regexp"
	"strings"

	"github.com/matzehuels/repograph/pkg/graph"
)

var (
	lineCommentRe  = regexp.MustCompile(`(?m)//.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

	typeOnlyRe = regexp.MustCompile(`import\s+type\b`)
)

// patterns are matched in this order; each captures the target in group 1.
var patterns = []*regexp.Regexp{
	// import "t", import x from "t", import { x } from "t", import * as x from "t"
	regexp.MustCompile(`\bimport(?:\s+(?:[\w*\s{},]+)\s+from)?\s*['"]([^'"]+)['"]`),
	// import("t"), await import("t")
	regexp.MustCompile(`\b(?:await\s+)?import\(\s*['"]([^'"]+)['"]\s*\)`),
	// require("t")
	regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
	// #include "t", #include <t>
	regexp.MustCompile(`#include\s+[<"]([^">]+)[">]`),
}

// assetExtensions are targets that name non-code resources.
var assetExtensions = []string{
	".css", ".scss", ".sass", ".less",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp", ".avif",
}

// Extract returns one [graph.Dependency] per qualifying reference in content,
// with sourceID as the source. It never fails; text without references yields
// an empty (nil) slice.
func Extract(sourceID, content string) []graph.Dependency {
	code := StripComments(content)

	var deps []graph.Dependency
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			full, target := m[0], m[1]
			if typeOnlyRe.MatchString(full) {
				continue
			}
			if IsAsset(target) {
				continue
			}
			deps = append(deps, graph.Dependency{Source: sourceID, Target: target})
		}
	}
	return deps
}

// StripComments removes line comments and then non-nested block comments.
// Line comments go first so that "// */" cannot close a block comment early.
func StripComments(content string) string {
	out := lineCommentRe.ReplaceAllString(content, "")
	return blockCommentRe.ReplaceAllString(out, "")
}

// IsAsset reports whether target ends in a style sheet or image extension.
// The comparison is case-insensitive.
func IsAsset(target string) bool {
	lower := strings.ToLower(target)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
