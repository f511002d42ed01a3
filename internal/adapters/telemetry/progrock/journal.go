package progrock

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/zerr"
)

// JournalExt is the extension of run journals.
const JournalExt = ".json"

// KeepJournals is how many run journals survive pruning.
const KeepJournals = 20

// ErrNoJournal is returned when no recorded run matches.
var ErrNoJournal = zerr.New("no recorded run found")

func createJournal(dir, runID string) (progrock.Writer, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create journal directory"), "dir", dir)
	}
	w, err := progrock.CreateJournal(filepath.Join(dir, runID+JournalExt))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create journal"), "run", runID)
	}
	return w, nil
}

// Journal is one recorded run.
type Journal struct {
	RunID   string
	Path    string
	ModTime time.Time
}

// Journals lists the recorded runs in dir, newest first. A missing directory
// has no journals.
func Journals(dir string) ([]Journal, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list journals"), "dir", dir)
	}

	var journals []Journal
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != JournalExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		journals = append(journals, Journal{
			RunID:   strings.TrimSuffix(e.Name(), JournalExt),
			Path:    filepath.Join(dir, e.Name()),
			ModTime: info.ModTime(),
		})
	}
	slices.SortFunc(journals, func(a, b Journal) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(b.RunID, a.RunID)
	})
	return journals, nil
}

// Prune removes all but the newest keep journals in dir.
func Prune(dir string, keep int) error {
	journals, err := Journals(dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, j := range journals[min(keep, len(journals)):] {
		if err := os.Remove(j.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Find returns the journal of runID, or the newest one when runID is empty.
// A unique prefix of a run ID is accepted.
func Find(dir, runID string) (Journal, error) {
	journals, err := Journals(dir)
	if err != nil {
		return Journal{}, err
	}
	for _, j := range journals {
		if runID == "" || strings.HasPrefix(j.RunID, runID) {
			return j, nil
		}
	}
	return Journal{}, zerr.With(zerr.With(ErrNoJournal, "dir", dir), "run", runID)
}

// Replay loads a journal onto a fresh tape and renders the finished run to w.
func Replay(j Journal, w io.Writer) error {
	f, err := os.Open(j.Path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open journal"), "run", j.RunID)
	}
	defer func() {
		_ = f.Close()
	}()

	tape, err := load(f)
	if err != nil {
		return zerr.With(err, "run", j.RunID)
	}

	u := progrock.DefaultUI()
	tape.SetWindowSize(replayWidth, replayHeight)
	u.SetWindowSize(replayWidth, replayHeight)
	return tape.Render(w, u)
}

const (
	replayWidth  = 100
	replayHeight = 40
)

func load(r io.Reader) (*progrock.Tape, error) {
	tape := progrock.NewTape()
	tape.ShowAllOutput(true)

	dec := json.NewDecoder(r)
	for {
		var update progrock.StatusUpdate
		err := dec.Decode(&update)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, zerr.Wrap(err, "failed to decode journal")
		}
		if err := tape.WriteStatus(&update); err != nil {
			return nil, err
		}
	}
	return tape, tape.Close()
}
