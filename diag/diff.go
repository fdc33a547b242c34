package diag

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line oriented diff from a to b. Unchanged lines are
// prefixed with two spaces, removals with "- " and insertions with
// "+ ". The empty string means the inputs are equal.
func Diff(a, b string) string {
	if a == b {
		return ""
	}
	diffCfg := diffpatch.New()
	ra, rb, lines := diffCfg.DiffLinesToRunes(a, b)
	diffs := diffCfg.DiffMainRunes(ra, rb, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for i := range diffs {
		diff := &diffs[i]
		var prefix string
		switch diff.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		case diffpatch.DiffEqual:
			prefix = "  "
		}
		for _, line := range splitKeepNonEmpty(diff.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitKeepNonEmpty(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
