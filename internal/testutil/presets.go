package testutil

import (
	"fmt"
	"strings"
	"time"
)

// WithRecentFiles adds n positions for /tmp/file-01.txt onwards. Each file
// was updated one minute after the previous one, so the last is the newest.
func (b *Builder) WithRecentFiles(n int) *Builder {
	base := time.Unix(1_700_000_000, 0)
	for i := 1; i <= n; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		b.WithPosition(RecentFile(i), At(i, 0), CreatedAt(at), UpdatedAt(at))
	}
	return b
}

// RecentFile is the path WithRecentFiles uses for file i (1-based).
func RecentFile(i int) string {
	return fmt.Sprintf("/tmp/file-%02d.txt", i)
}

// NumberedText returns n lines "line 1" through "line n" joined by '\n',
// without a trailing newline.
func NumberedText(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}
