package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultMaxUndoStackDepth is the default number of snapshots we keep
	DefaultMaxUndoStackDepth = 10
	// UndoDir is the directory, relative to the git directory, where undo snapshots are stored
	UndoDir = "instafix/undo"
	// jsonExt is the file extension for snapshot files
	jsonExt = ".json"
	// snapshotTimeFormat sorts chronologically as a string
	snapshotTimeFormat = "20060102150405.000"
)

// Snapshot records the refs an operation moved, so it can be undone
type Snapshot struct {
	OperationID   string    `json:"operation_id"`
	Timestamp     time.Time `json:"timestamp"`
	Command       string    `json:"command"`
	Args          []string  `json:"args"`
	CurrentBranch string    `json:"current_branch"`
	// KeepIndex restores the checked out branch without touching the index,
	// so changes folded into history come back staged
	KeepIndex bool          `json:"keep_index"`
	Refs      []SnapshotRef `json:"refs"`
}

// SnapshotRef is one ref move: Old is the value before the operation
type SnapshotRef struct {
	Ref    string `json:"ref"`
	Branch string `json:"branch,omitempty"`
	Old    string `json:"old"`
	New    string `json:"new"`
}

// SnapshotInfo provides metadata about a snapshot for display
type SnapshotInfo struct {
	ID          string    // Filename without extension
	Command     string    // Command name
	Args        []string  // Command arguments
	Timestamp   time.Time // When the snapshot was taken
	DisplayName string    // Human-readable description
}

// Journal stores undo snapshots as JSON files, keeping the most recent ones
type Journal struct {
	dir      string
	maxDepth int
}

// NewJournal creates a Journal rooted at gitDir
func NewJournal(gitDir string, maxDepth int) *Journal {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxUndoStackDepth
	}
	return &Journal{dir: filepath.Join(gitDir, filepath.FromSlash(UndoDir)), maxDepth: maxDepth}
}

// Dir returns the directory snapshots are written to
func (j *Journal) Dir() string {
	return j.dir
}

// getSnapshotFilename generates a filename for a snapshot
func getSnapshotFilename(timestamp time.Time, command string) string {
	// Format: YYYYMMDDHHMMSS.mmm_command.json
	return fmt.Sprintf("%s_%s%s", timestamp.Format(snapshotTimeFormat), command, jsonExt)
}

// parseSnapshotFilename extracts timestamp and command from a filename
func parseSnapshotFilename(filename string) (time.Time, string, error) {
	base, ok := strings.CutSuffix(filename, jsonExt)
	if !ok || base == "" {
		return time.Time{}, "", fmt.Errorf("invalid snapshot filename: %s", filename)
	}

	timestampStr, command, ok := strings.Cut(base, "_")
	if !ok {
		return time.Time{}, "", fmt.Errorf("invalid snapshot filename format: %s", filename)
	}

	timestamp, err := time.ParseInLocation(snapshotTimeFormat, timestampStr, time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to parse timestamp: %w", err)
	}

	return timestamp, command, nil
}

// Record writes a snapshot and returns its ID
func (j *Journal) Record(snapshot *Snapshot) (string, error) {
	if err := os.MkdirAll(j.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create undo directory: %w", err)
	}

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now()
	}

	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filename := getSnapshotFilename(snapshot.Timestamp, snapshot.Command)
	if err := os.WriteFile(filepath.Join(j.dir, filename), jsonData, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	// The snapshot is saved; extra old ones are harmless
	_ = j.enforceMaxStackDepth()

	return strings.TrimSuffix(filename, jsonExt), nil
}

// enforceMaxStackDepth removes the oldest snapshots beyond maxDepth
func (j *Journal) enforceMaxStackDepth() error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return fmt.Errorf("failed to read undo directory: %w", err)
	}

	var snapshots []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == jsonExt {
			snapshots = append(snapshots, entry)
		}
	}

	if len(snapshots) <= j.maxDepth {
		return nil
	}

	// Filenames start with the timestamp, so this is chronological
	sort.Slice(snapshots, func(a, b int) bool {
		return snapshots[a].Name() < snapshots[b].Name()
	})

	for _, entry := range snapshots[:len(snapshots)-j.maxDepth] {
		_ = os.Remove(filepath.Join(j.dir, entry.Name()))
	}
	return nil
}

// List returns all available snapshots, newest first
func (j *Journal) List() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read undo directory: %w", err)
	}

	snapshots := make([]SnapshotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != jsonExt {
			continue
		}

		timestamp, command, err := parseSnapshotFilename(entry.Name())
		if err != nil {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), jsonExt)
		snapshot, err := j.Load(id)
		if err != nil {
			continue
		}

		snapshots = append(snapshots, SnapshotInfo{
			ID:          id,
			Command:     command,
			Args:        snapshot.Args,
			Timestamp:   timestamp,
			DisplayName: formatSnapshotDisplay(command, snapshot.Args, timestamp),
		})
	}

	sort.Slice(snapshots, func(a, b int) bool {
		if !snapshots[a].Timestamp.Equal(snapshots[b].Timestamp) {
			return snapshots[a].Timestamp.After(snapshots[b].Timestamp)
		}
		return snapshots[a].ID > snapshots[b].ID
	})

	return snapshots, nil
}

// formatSnapshotDisplay creates a human-readable description of a snapshot
func formatSnapshotDisplay(command string, args []string, timestamp time.Time) string {
	cmdStr := command
	if len(args) > 0 {
		cmdStr = command + " " + strings.Join(args, " ")
	}
	return fmt.Sprintf("Before '%s' (%s)", cmdStr, timestamp.Format("2006-01-02 15:04:05"))
}

// Load loads a snapshot by ID (filename without .json)
func (j *Journal) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(j.dir, id+jsonExt))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snapshot, nil
}

// Remove deletes a snapshot
func (j *Journal) Remove(id string) error {
	if err := os.Remove(filepath.Join(j.dir, id+jsonExt)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}
