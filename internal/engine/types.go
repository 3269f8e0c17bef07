package engine

import (
	"fmt"

	"instafix.dev/instafix/internal/git"
)

// CommitChain is a linear sequence of commits, oldest first
type CommitChain []*git.Commit

// Index returns the position of sha in the chain, or -1
func (c CommitChain) Index(sha string) int {
	for i, commit := range c {
		if commit.Hash == sha {
			return i
		}
	}
	return -1
}

// After returns the commits that follow sha in the chain
func (c CommitChain) After(sha string) CommitChain {
	i := c.Index(sha)
	if i < 0 {
		return nil
	}
	return c[i+1:]
}

// Head returns the newest commit of the chain
func (c CommitChain) Head() *git.Commit {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// Newest returns up to limit commits, newest first. A limit <= 0 returns all of them.
func (c CommitChain) Newest(limit int) CommitChain {
	n := len(c)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make(CommitChain, 0, n)
	for i := len(c) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, c[i])
	}
	return out
}

// RewriteMap records which commit replaced which, in the order the replacements
// were made. Entries are only ever appended.
type RewriteMap struct {
	order []string
	m     map[string]string
}

// NewRewriteMap creates an empty RewriteMap
func NewRewriteMap() *RewriteMap {
	return &RewriteMap{m: make(map[string]string)}
}

// Record maps old to replacement. Each original is replaced exactly once per operation.
func (r *RewriteMap) Record(old, replacement string) error {
	if _, exists := r.m[old]; exists {
		return fmt.Errorf("commit %s was already rewritten", old)
	}
	r.order = append(r.order, old)
	r.m[old] = replacement
	return nil
}

// Get returns the replacement of old
func (r *RewriteMap) Get(old string) (string, bool) {
	replacement, ok := r.m[old]
	return replacement, ok
}

// Len returns the number of recorded replacements
func (r *RewriteMap) Len() int {
	return len(r.order)
}

// Originals returns the rewritten commits in the order they were recorded
func (r *RewriteMap) Originals() []string {
	return append([]string(nil), r.order...)
}

// Last returns the most recently recorded replacement
func (r *RewriteMap) Last() (old, replacement string, ok bool) {
	if len(r.order) == 0 {
		return "", "", false
	}
	old = r.order[len(r.order)-1]
	return old, r.m[old], true
}

// Head describes what HEAD pointed at before the operation
type Head struct {
	// Branch is empty when HEAD is detached
	Branch string
	Hash   string
}

// Detached returns true if HEAD is not on a branch
func (h Head) Detached() bool {
	return h.Branch == ""
}

// UpstreamSpec is the upstream requested by the user, and where the request came from.
// An empty Name asks the resolver to search the default trunk branches.
type UpstreamSpec struct {
	Name   string
	Source string
}

// Range is the resolved set of candidate commits
type Range struct {
	Head      Head
	Upstream  string
	MergeBase string
	Chain     CommitChain
}

// Candidate is a commit offered for selection
type Candidate struct {
	Commit *git.Commit
	// Branches lists local branches, other than the current one, whose tip is this commit
	Branches []string
	IsHead   bool
}

// RefUpdate is a ref that was moved to a replacement commit
type RefUpdate struct {
	Branch string
	Ref    string
	Old    string
	New    string
}

// FixupResult describes a completed fixup
type FixupResult struct {
	Target     *git.Commit
	Amended    string
	Rewrites   *RewriteMap
	Updated    []RefUpdate
	SnapshotID string
}

// RebaseResult describes a completed rebase with intermediates
type RebaseResult struct {
	Onto     string
	Rewrites *RewriteMap
	Updated  []RefUpdate
}
