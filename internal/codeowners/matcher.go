package codeowners

import "strings"

// Matches reports whether a changed-file path matches a CODEOWNERS path
// pattern, following gitignore semantics:
//
//   - a pattern containing a non-trailing "/" is anchored to the repository
//     root; otherwise it matches at any depth
//   - a trailing "/" names a directory: it matches every path beneath that
//     directory, not the bare path itself
//   - a pattern that matches a leading run of path segments also matches
//     everything nested below it ("docs" matches "docs/guide/intro.md")
//   - "*" and "?" match within a single segment; "**" spans zero or more
//     whole segments
//
// Matching is case-sensitive and "/" is the sole separator.
func Matches(path, pattern string) bool {
	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	anchored := strings.HasPrefix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")

	if pattern == "" || path == "" {
		return false
	}
	anchored = anchored || strings.Contains(pattern, "/")

	patSegs := strings.Split(pattern, "/")
	pathSegs := strings.Split(path, "/")

	if anchored {
		return matchSegments(patSegs, pathSegs, dirOnly)
	}
	for i := range pathSegs {
		if matchSegments(patSegs, pathSegs[i:], dirOnly) {
			return true
		}
	}
	return false
}

// matchSegments matches pattern segments against path segments. Once the
// pattern is fully consumed the path matches, except that a directory-only
// pattern additionally requires at least one remaining path segment.
func matchSegments(pat, segs []string, dirOnly bool) bool {
	if len(pat) == 0 {
		return !dirOnly || len(segs) > 0
	}
	if pat[0] == "**" {
		for k := 0; k <= len(segs); k++ {
			if matchSegments(pat[1:], segs[k:], dirOnly) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	if !matchSegment(pat[0], segs[0]) {
		return false
	}
	return matchSegments(pat[1:], segs[1:], dirOnly)
}

// matchSegment matches one pattern segment against one path segment.
// "*" matches any run of characters, "?" exactly one; neither crosses "/".
func matchSegment(pat, s string) bool {
	// Backtracking positions for the most recent "*".
	var starPat, starS = -1, 0
	p, i := 0, 0

	for i < len(s) {
		switch {
		case p < len(pat) && pat[p] == '*':
			starPat, starS = p, i
			p++
		case p < len(pat) && (pat[p] == '?' || pat[p] == s[i]):
			p++
			i++
		case starPat >= 0:
			starS++
			i = starS
			p = starPat + 1
		default:
			return false
		}
	}
	for p < len(pat) && pat[p] == '*' {
		p++
	}
	return p == len(pat)
}
