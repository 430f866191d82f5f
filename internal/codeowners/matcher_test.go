package codeowners

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		// Exact file names match at any depth.
		{"file.txt", "file.txt", true},
		{"path/to/file.txt", "file.txt", true},
		{"file.txt2", "file.txt", false},

		// Trailing slash: directory contents at any depth, never the bare name.
		{"docs/file.md", "docs/", true},
		{"docs/subfolder/file.md", "docs/", true},
		{"docs", "docs/", false},

		// A non-trailing slash anchors the pattern to the root.
		{"other/docs/mydocs/file.md", "docs/mydocs", false},
		{"docs/file.md", "/docs/file.md", true},
		{"src/docs/file.md", "/docs/file.md", false},

		// Single-segment wildcards.
		{"file.js", "*.js", true},
		{"path/to/file.js", "*.js", true},
		{"file.jsx", "*.js", false},
		{"docs/mydocs/file.md", "docs/*/file.md", true},
		{"docs/mydocs/file.md", "docs/*/*.md", true},
		{"docs/mydocs/other/file.md", "docs/*/file.md", false},

		// "**" spans whole segments, including zero of them.
		{"any/path/to/docs/file.md", "**/docs/file.md", true},
		{"docs/file.md", "**/docs/file.md", true},
		{"docs/other.md", "**/docs/file.md", false},

		// "?" matches exactly one character.
		{"file1.js", "file?.js", true},
		{"filea.js", "file?.js", true},
		{"file10.js", "file?.js", false},

		// Combined "**" and "*".
		{"src/js/feature/index.ts", "**/js/**/*.ts", true},
		{"deep/path/js/other/path/file.ts", "**/js/**/*.ts", true},
		{"src/js/feature/index.tsx", "**/js/**/*.ts", false},
		{"apps/web/src/components/Button.tsx", "apps/**/components/*.tsx", true},
		{"apps/mobile/src/components/Button.tsx", "apps/**/components/*.tsx", true},
		{"apps/web/src/pages/Button.tsx", "apps/**/components/*.tsx", false},

		// Bare name matches the segment itself and everything beneath it.
		{"docs", "docs", true},
		{"docs/file.txt", "docs", true},
		{"somedir/docs/file.txt", "docs", true},

		// Anchored directory patterns cover nested files.
		{"folder1/some_file.txt", "/folder1", true},
		{"folder1/subfolder/file.js", "/folder1", true},
		{"other/folder1/file.js", "/folder1", false},

		// Dot files keep full-segment boundaries.
		{".github/workflows/test.yml", ".github/workflows/*.yml", true},
		{".env", ".env", true},
		{".env.local", ".env", false},

		// Case-sensitive.
		{"Docs/file.md", "docs/", false},

		// Degenerate patterns.
		{"file.txt", "", false},
		{"file.txt", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.path, tt.pattern),
				"Matches(%q, %q)", tt.path, tt.pattern)
		})
	}
}
