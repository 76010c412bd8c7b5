// Package logtail follows a single append-only log file and hands out the
// bytes appended since the previous poll.
//
// A Tailer opens and closes the file on every poll so that the game client
// is free to rotate or replace it. When the file shrinks below the recorded
// offset the tailer treats it as a new session and starts again from zero.
package logtail

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the tailed file does not exist.
var ErrNotFound = errors.New("log file not found")

// State is the persistent part of a tailer: which file, and how far into it
// we have read. LastOffset never decreases unless the file shrinks.
type State struct {
	Path       string
	LastOffset int64
}

// Chunk is the result of one poll. Text holds the raw bytes of [Base, End);
// it is empty when nothing was appended.
type Chunk struct {
	Base  int64
	End   int64
	Text  string
	Reset bool // file shrank since the last poll; Base is 0
}

// Empty reports whether the poll produced no new bytes.
func (c Chunk) Empty() bool {
	return c.Text == ""
}

// Tailer tracks a byte offset into one file. It is not safe for concurrent
// use; callers serialize polls.
type Tailer struct {
	state State
	log   *zap.Logger
}

// NewTailer returns a tailer positioned at offset zero.
func NewTailer(path string, log *zap.Logger) *Tailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tailer{
		state: State{Path: path},
		log:   log,
	}
}

// State returns a copy of the current state.
func (t *Tailer) State() State {
	return t.state
}

// Offset returns the number of bytes already consumed.
func (t *Tailer) Offset() int64 {
	return t.state.LastOffset
}

// Size stats the file without reading it.
func (t *Tailer) Size() (int64, error) {
	info, err := os.Stat(t.state.Path)
	if err != nil {
		return 0, wrapOpenErr(t.state.Path, err)
	}
	return info.Size(), nil
}

// SeekEnd moves the offset to the current end of the file so that only
// content written from now on is returned.
func (t *Tailer) SeekEnd() error {
	size, err := t.Size()
	if err != nil {
		return err
	}
	t.state.LastOffset = size
	t.log.Debug("seeked to end", zap.String("path", t.state.Path), zap.Int64("offset", size))
	return nil
}

// Poll reads whatever was appended since the last successful poll.
//
// On any error the offset is left untouched, so a later poll retries the
// same byte range.
func (t *Tailer) Poll() (Chunk, error) {
	f, err := os.Open(t.state.Path)
	if err != nil {
		return Chunk{}, wrapOpenErr(t.state.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			t.log.Warn("close log file", zap.String("path", t.state.Path), zap.Error(cerr))
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return Chunk{}, fmt.Errorf("stat %s: %w", t.state.Path, err)
	}
	size := info.Size()

	base := t.state.LastOffset
	reset := false
	if size < base {
		t.log.Info("log file shrank, starting over",
			zap.String("path", t.state.Path),
			zap.Int64("size", size),
			zap.Int64("offset", base))
		base = 0
		reset = true
	}

	if size == base {
		t.state.LastOffset = base
		return Chunk{Base: base, End: base, Reset: reset}, nil
	}

	buf := make([]byte, size-base)
	if _, err := f.ReadAt(buf, base); err != nil {
		return Chunk{}, fmt.Errorf("read %s [%d,%d): %w", t.state.Path, base, size, err)
	}

	t.state.LastOffset = size
	return Chunk{Base: base, End: size, Text: string(buf), Reset: reset}, nil
}

func wrapOpenErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}
