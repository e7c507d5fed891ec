package phone

import (
	"strings"

	"github.com/samber/lo"
)

// ParseNumbers splits a newline-separated batch into trimmed, non-empty
// numbers. Order and duplicates are preserved.
func ParseNumbers(text string) []string {
	lines := lo.Map(strings.Split(text, "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
	return lo.Compact(lines)
}
