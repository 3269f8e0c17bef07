package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	instafixerrors "instafix.dev/instafix/internal/errors"
)

var (
	unmergedPathPattern = regexp.MustCompile(`(?m)^U (.+)$`)
	patchFailedPattern  = regexp.MustCompile(`(?m)^error: (?:patch failed: (.+):\d+|(.+): (?:patch does not apply|does not exist in index|already exists in index))$`)
)

// ApplyPatchToTree applies patch to the tree of commit and writes the result as a
// new tree object. A scratch index is used, so neither the repository index nor the
// work tree is touched. A patch that does not apply cleanly yields an ApplyConflictError.
func (r *Repository) ApplyPatchToTree(ctx context.Context, commit, patch string) (string, error) {
	indexFile, err := os.CreateTemp("", "instafix-index-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary index: %w", err)
	}
	indexPath := indexFile.Name()
	_ = indexFile.Close()
	// read-tree refuses to load into an empty non-index file
	_ = os.Remove(indexPath)
	defer func() { _ = os.Remove(indexPath) }()

	env := []string{"GIT_INDEX_FILE=" + indexPath}

	if _, err := r.runner.RunWithEnv(ctx, env, "", "read-tree", commit); err != nil {
		return "", fmt.Errorf("failed to read tree of %s: %w", commit, err)
	}

	if _, err := r.runner.RunWithEnv(ctx, env, patch, "apply", "--cached", "--3way", "--whitespace=nowarn", "-"); err != nil {
		if gitErr, ok := commandFailure(err); ok && gitErr.ExitCode > 0 {
			detail := gitErr.Stderr + gitErr.Stdout
			return "", instafixerrors.NewApplyConflictError(commit, conflictPaths(detail), strings.TrimSpace(detail))
		}
		return "", fmt.Errorf("failed to apply staged changes: %w", err)
	}

	tree, err := r.runner.RunWithEnv(ctx, env, "", "write-tree")
	if err != nil {
		return "", fmt.Errorf("failed to write tree: %w", err)
	}
	return tree, nil
}

// conflictPaths extracts the paths git apply reported as conflicted
func conflictPaths(output string) []string {
	seen := make(map[string]bool)
	for _, m := range unmergedPathPattern.FindAllStringSubmatch(output, -1) {
		seen[strings.TrimSpace(m[1])] = true
	}
	for _, m := range patchFailedPattern.FindAllStringSubmatch(output, -1) {
		path := m[1]
		if path == "" {
			path = m[2]
		}
		seen[strings.TrimSpace(path)] = true
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// MergeTreeResult is the outcome of a three-way tree merge
type MergeTreeResult struct {
	Tree      string
	Conflicts []string
}

// Clean returns true if the merge produced no conflicts
func (m MergeTreeResult) Clean() bool {
	return len(m.Conflicts) == 0
}

// MergeTree merges theirs into ours relative to base without touching the index or
// work tree. Conflicts are reported in the result rather than as an error.
//
// The merge runs in a scratch index: read-tree resolves the trivial cases and
// every path left unmerged gets a content merge through merge-file.
func (r *Repository) MergeTree(ctx context.Context, base, ours, theirs string) (MergeTreeResult, error) {
	scratch, err := os.MkdirTemp("", "instafix-merge-*")
	if err != nil {
		return MergeTreeResult{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	env := []string{"GIT_INDEX_FILE=" + filepath.Join(scratch, "index")}

	if _, err := r.runner.RunWithEnv(ctx, env, "", "read-tree", "-m", "-i", "--aggressive", base, ours, theirs); err != nil {
		return MergeTreeResult{}, fmt.Errorf("failed to merge trees: %w", err)
	}

	unmerged, err := r.unmergedEntries(ctx, env)
	if err != nil {
		return MergeTreeResult{}, err
	}

	var result MergeTreeResult
	for _, path := range sortedKeys(unmerged) {
		ok, err := r.resolveUnmerged(ctx, env, scratch, path, unmerged[path])
		if err != nil {
			return MergeTreeResult{}, err
		}
		if !ok {
			result.Conflicts = append(result.Conflicts, path)
		}
	}
	if !result.Clean() {
		return result, nil
	}

	tree, err := r.runner.RunWithEnv(ctx, env, "", "write-tree")
	if err != nil {
		return MergeTreeResult{}, fmt.Errorf("failed to write merged tree: %w", err)
	}
	result.Tree = tree
	return result, nil
}

// indexStage is one side of an unmerged index entry
type indexStage struct {
	mode string
	hash string
}

// unmergedStages holds the base, ours and theirs stages of a path; missing sides are nil
type unmergedStages [3]*indexStage

func (r *Repository) unmergedEntries(ctx context.Context, env []string) (map[string]*unmergedStages, error) {
	output, err := r.runner.RunWithEnv(ctx, env, "", "ls-files", "--unmerged", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged paths: %w", err)
	}

	entries := make(map[string]*unmergedStages)
	for _, record := range strings.Split(output, "\x00") {
		// <mode> SP <object> SP <stage> TAB <path>
		meta, path, ok := strings.Cut(record, "\t")
		if !ok {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			return nil, fmt.Errorf("unexpected ls-files output: %q", record)
		}
		stage, err := strconv.Atoi(fields[2])
		if err != nil || stage < 1 || stage > 3 {
			return nil, fmt.Errorf("unexpected ls-files stage: %q", record)
		}
		if entries[path] == nil {
			entries[path] = &unmergedStages{}
		}
		entries[path][stage-1] = &indexStage{mode: fields[0], hash: fields[1]}
	}
	return entries, nil
}

// resolveUnmerged content-merges a path changed on both sides and stages the result.
// It returns false when the path is a genuine conflict.
func (r *Repository) resolveUnmerged(ctx context.Context, env []string, scratch, path string, stages *unmergedStages) (bool, error) {
	base, ours, theirs := stages[0], stages[1], stages[2]
	// add/add, modify/delete and directory/file clashes
	if base == nil || ours == nil || theirs == nil {
		return false, nil
	}
	mode, ok := mergeMode(base.mode, ours.mode, theirs.mode)
	if !ok || !isRegularFileMode(mode) {
		return false, nil
	}

	files := make([]string, 3)
	for i, side := range []*indexStage{ours, base, theirs} {
		content, err := r.runner.RunRaw(ctx, "cat-file", "blob", side.hash)
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files[i] = filepath.Join(scratch, fmt.Sprintf("stage%d", i))
		if err := os.WriteFile(files[i], []byte(content), 0o600); err != nil {
			return false, fmt.Errorf("failed to write scratch file: %w", err)
		}
	}

	// merge-file exits non-zero on conflicts and on binary input
	if _, err := r.runner.Run(ctx, "merge-file", "--quiet", files[0], files[1], files[2]); err != nil {
		if _, ok := commandFailure(err); ok && ctx.Err() == nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to merge %s: %w", path, err)
	}

	hash, err := r.runner.Run(ctx, "hash-object", "-w", "--no-filters", "--", files[0])
	if err != nil {
		return false, fmt.Errorf("failed to store merged %s: %w", path, err)
	}
	if _, err := r.runner.RunWithEnv(ctx, env, "", "update-index", "--cacheinfo", mode+","+hash+","+path); err != nil {
		return false, fmt.Errorf("failed to stage merged %s: %w", path, err)
	}
	return true, nil
}

// mergeMode picks the resulting file mode, or false when both sides changed it differently
func mergeMode(base, ours, theirs string) (string, bool) {
	switch {
	case ours == theirs:
		return ours, true
	case base == ours:
		return theirs, true
	case base == theirs:
		return ours, true
	default:
		return "", false
	}
}

func isRegularFileMode(mode string) bool {
	return mode == "100644" || mode == "100755"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
