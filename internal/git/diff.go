package git

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// FileStat summarizes the changes to one file in a patch
type FileStat struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool
}

// Changed returns the number of changed lines in the file
func (f FileStat) Changed() int {
	return f.Added + f.Deleted
}

// DiffStats parses a unified diff into per-file statistics
func DiffStats(patch string) ([]FileStat, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(patch)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	stats := make([]FileStat, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		stat := FileStat{Path: diffPath(fd)}
		for _, ext := range fd.Extended {
			if strings.HasPrefix(ext, "Binary files ") || ext == "GIT binary patch" {
				stat.Binary = true
			}
		}
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case strings.HasPrefix(line, "+"):
					stat.Added++
				case strings.HasPrefix(line, "-"):
					stat.Deleted++
				}
			}
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func diffPath(fd *diff.FileDiff) string {
	name := fd.NewName
	if name == "" || name == "/dev/null" {
		name = fd.OrigName
	}
	for _, prefix := range []string{"a/", "b/"} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix)
		}
	}
	return name
}
