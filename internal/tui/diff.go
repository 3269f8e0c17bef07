package tui

import (
	"fmt"
	"strings"

	"instafix.dev/instafix/internal/git"
)

// diffHeightMargin is the number of rows kept free for the prompt below a diff
const diffHeightMargin = 5

// maxStatBarWidth caps the +/- bar of a diffstat line
const maxStatBarWidth = 40

// FitsTerminal reports whether a diff with the given stats can be shown in full
// in a terminal of height rows
func FitsTerminal(stats []git.FileStat, height int) bool {
	lines := 0
	for _, s := range stats {
		lines += s.Changed()
	}
	return lines <= height-diffHeightMargin
}

// ColorizeDiff colors a unified diff the way `git diff --color` does
func ColorizeDiff(patch string) string {
	lines := strings.Split(strings.TrimRight(patch, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff --git"),
			strings.HasPrefix(line, "index "),
			strings.HasPrefix(line, "+++"),
			strings.HasPrefix(line, "---"),
			strings.HasPrefix(line, "new file mode"),
			strings.HasPrefix(line, "deleted file mode"):
			b.WriteString(ColorBold(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(ColorCyan(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(ColorGreen(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(ColorRed(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDiffStat renders per-file statistics like `git diff --stat`
func RenderDiffStat(stats []git.FileStat) string {
	pathWidth, maxChanged, countWidth := 0, 0, 1
	added, deleted := 0, 0
	for _, s := range stats {
		pathWidth = max(pathWidth, len(s.Path))
		maxChanged = max(maxChanged, s.Changed())
		countWidth = max(countWidth, len(fmt.Sprint(s.Changed())))
		added += s.Added
		deleted += s.Deleted
	}

	var b strings.Builder
	for _, s := range stats {
		fmt.Fprintf(&b, " %-*s | ", pathWidth, s.Path)
		if s.Binary {
			b.WriteString("Bin\n")
			continue
		}
		plus, minus := s.Added, s.Deleted
		if maxChanged > maxStatBarWidth {
			plus = scaleBar(s.Added, maxChanged)
			minus = scaleBar(s.Deleted, maxChanged)
		}
		fmt.Fprintf(&b, "%*d %s%s\n", countWidth, s.Changed(),
			ColorGreen(strings.Repeat("+", plus)), ColorRed(strings.Repeat("-", minus)))
	}

	files := "files"
	if len(stats) == 1 {
		files = "file"
	}
	fmt.Fprintf(&b, " %d %s changed, %d insertions(+), %d deletions(-)\n", len(stats), files, added, deleted)
	return b.String()
}

func scaleBar(n, maxChanged int) int {
	if n == 0 {
		return 0
	}
	return max(1, n*maxStatBarWidth/maxChanged)
}
