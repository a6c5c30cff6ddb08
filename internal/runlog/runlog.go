// Package runlog keeps an append-only CSV audit trail of the commands that
// changed a workspace.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp  time.Time
	RunID      string
	Command    string
	Action     string
	Details    string
	File       string
	CommitHash string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,command,action,details,file,commit_hash"

const (
	numFields     = 7
	logDir        = "logs"
	logFile       = "logs/run-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colCommand    = 2
	colAction     = 3
	colDetails    = 4
	colFile       = 5
	colCommitHash = 6
)

// NewRunID returns a fresh identifier for one command invocation.
func NewRunID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colCommand] = e.Command
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colFile] = e.File
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	if record[colRunID] != "" {
		if _, err := uuid.Parse(record[colRunID]); err != nil {
			return Entry{}, fmt.Errorf("parsing run id %q: %w", record[colRunID], err)
		}
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Command:    record[colCommand],
		Action:     record[colAction],
		Details:    record[colDetails],
		File:       record[colFile],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <repoRoot>/logs/run-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if info, err := os.Stat(path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing run log: %w", err)
	}
	return f.Close()
}

// Read returns all entries from <repoRoot>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Recorder stamps entries for a single command run.
type Recorder struct {
	RepoRoot string
	RunID    string
	Command  string
	now      func() time.Time
	pending  []Entry
}

// NewRecorder starts a run of command against repoRoot.
func NewRecorder(repoRoot, command string) *Recorder {
	return &Recorder{
		RepoRoot: repoRoot,
		RunID:    NewRunID(),
		Command:  command,
		now:      time.Now,
	}
}

// Record queues an entry.
func (r *Recorder) Record(action, details, file string) {
	r.pending = append(r.pending, Entry{
		Timestamp: r.now(),
		RunID:     r.RunID,
		Command:   r.Command,
		Action:    action,
		Details:   details,
		File:      file,
	})
}

// Flush appends the queued entries, stamping them with commitHash.
func (r *Recorder) Flush(commitHash string) error {
	if len(r.pending) == 0 {
		return nil
	}
	for i := range r.pending {
		r.pending[i].CommitHash = commitHash
	}
	if err := Append(r.RepoRoot, r.pending); err != nil {
		return err
	}
	r.pending = nil
	return nil
}
