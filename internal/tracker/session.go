// Package tracker owns a tracking session: it follows the game log, feeds
// parsed standing changes into the ledger and publishes notices for a UI.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"standings/internal/ledger"
	"standings/internal/logparse"
	"standings/internal/logtail"
	"standings/internal/planner"
	"standings/internal/syndicate"
)

var (
	// ErrNotWatching is returned by Poll when no log is being tracked.
	ErrNotWatching = errors.New("not tracking a log file")
	// ErrClosed is returned once the session has been closed.
	ErrClosed = errors.New("session closed")
)

const defaultNoticeBuffer = 256

// Options configures a Session.
type Options struct {
	Initial      syndicate.Standings
	Debounce     time.Duration
	PollInterval time.Duration
	FromStart    bool // replay the file from offset zero instead of its end
	HistoryLimit int  // applied changes kept by History; zero keeps none
	NoticeBuffer int

	// Logger carries session lifecycle messages. TailLogger, ParseLogger and
	// LedgerLogger carry file tailing, line extraction and standing updates;
	// each defaults to a child of Logger when nil.
	Logger       *zap.Logger
	TailLogger   *zap.Logger
	ParseLogger  *zap.Logger
	LedgerLogger *zap.Logger
}

// Session is the single owner of the ledger. Standing changes from the log
// and manual edits are applied under one lock, so they never interleave.
type Session struct {
	lifecycle sync.Mutex // serializes StartWatching, StopWatching and Close

	mu      sync.Mutex
	ledger  *ledger.Ledger
	tailer  *logtail.Tailer
	lines   logtail.LineBuffer
	watcher *logtail.Watcher
	watchID string
	history []StandingChange

	noticeMu sync.Mutex
	notices  chan Notice
	closed   bool

	opts      Options
	log       *zap.Logger
	tailLog   *zap.Logger
	parseLog  *zap.Logger
	ledgerLog *zap.Logger
}

// New creates an idle session seeded with opts.Initial.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TailLogger == nil {
		opts.TailLogger = opts.Logger.Named("tail")
	}
	if opts.ParseLogger == nil {
		opts.ParseLogger = opts.Logger.Named("parse")
	}
	if opts.LedgerLogger == nil {
		opts.LedgerLogger = opts.Logger.Named("ledger")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = logtail.DefaultDebounce
	}
	if opts.NoticeBuffer <= 0 {
		opts.NoticeBuffer = defaultNoticeBuffer
	}
	return &Session{
		ledger:  ledger.New(opts.Initial),
		notices: make(chan Notice, opts.NoticeBuffer),
		opts:      opts,
		log:       opts.Logger,
		tailLog:   opts.TailLogger,
		parseLog:  opts.ParseLogger,
		ledgerLog: opts.LedgerLogger,
	}
}

// Notices delivers tracking status and standing change notices. It is closed
// by Close. Notices are dropped, with a warning, if the buffer is full.
func (s *Session) Notices() <-chan Notice {
	return s.notices
}

// StartWatching begins tracking path. Any watch already running is stopped
// first. A missing file is reported as an inactive status notice and an
// error wrapping logtail.ErrNotFound; no watch is started.
func (s *Session) StartWatching(ctx context.Context, path string) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.isClosed() {
		return ErrClosed
	}
	s.stopLocked(false)

	tailer := logtail.NewTailer(path, s.tailLog)
	var err error
	if s.opts.FromStart {
		_, err = tailer.Size()
	} else {
		err = tailer.SeekEnd()
	}
	if err != nil {
		s.failStart(path, err)
		return err
	}

	w, err := logtail.NewWatcher(path, s.onChange, logtail.WatcherOptions{
		Debounce:     s.opts.Debounce,
		PollInterval: s.opts.PollInterval,
		Logger:       s.tailLog.Named("watch"),
	})
	if err != nil {
		s.failStart(path, err)
		return err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.tailer = tailer
	s.lines.Reset()
	s.watchID = id
	s.mu.Unlock()

	if err := w.Start(ctx); err != nil {
		w.Stop()
		s.mu.Lock()
		s.tailer = nil
		s.watchID = ""
		s.mu.Unlock()
		s.failStart(path, err)
		return err
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	s.log.Info("tracking started", zap.String("path", path), zap.String("session", id), zap.Int64("offset", tailer.Offset()))
	s.emit(Notice{SessionID: id, Status: &TrackingStatus{Active: true, Path: path}})

	if s.opts.FromStart {
		w.Notify()
	}
	return nil
}

func (s *Session) failStart(path string, err error) {
	msg := err.Error()
	if errors.Is(err, logtail.ErrNotFound) {
		msg = "log file not found: " + path
	}
	s.log.Warn("tracking not started", zap.String("path", path), zap.Error(err))
	s.emit(Notice{Status: &TrackingStatus{Active: false, Path: path, Error: msg}})
}

// StopWatching stops tracking. Once it returns no further standing changes
// from the stopped watch are applied or published.
func (s *Session) StopWatching() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	s.stopLocked(true)
}

// stopLocked requires s.lifecycle. The watcher is stopped without holding
// s.mu because its change handler takes s.mu.
func (s *Session) stopLocked(emitStatus bool) {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		w.Stop()
	}

	s.mu.Lock()
	id := s.watchID
	s.tailer = nil
	s.watchID = ""
	s.lines.Reset()
	s.mu.Unlock()

	if w != nil {
		s.log.Info("tracking stopped", zap.String("session", id))
	}
	if emitStatus {
		s.emit(Notice{SessionID: id, Status: &TrackingStatus{Active: false}})
	}
}

// Close stops tracking and closes the notice channel.
func (s *Session) Close() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.isClosed() {
		return
	}
	s.stopLocked(true)

	s.noticeMu.Lock()
	s.closed = true
	close(s.notices)
	s.noticeMu.Unlock()
}

// IsWatching reports whether a log file is being tracked.
func (s *Session) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watcher != nil
}

// Poll reads newly appended log content, applies every standing change in it
// and returns the extracted events. The watcher calls this after each
// debounced notification; callers may also poll directly.
func (s *Session) Poll() ([]syndicate.Event, error) {
	s.mu.Lock()
	if s.tailer == nil {
		s.mu.Unlock()
		return nil, ErrNotWatching
	}
	id := s.watchID
	events, changes, err := s.pollLocked()
	s.mu.Unlock()

	for i := range changes {
		s.emit(Notice{SessionID: id, Change: &changes[i]})
	}
	return events, err
}

func (s *Session) pollLocked() ([]syndicate.Event, []StandingChange, error) {
	chunk, err := s.tailer.Poll()
	if err != nil {
		return nil, nil, err
	}
	if chunk.Reset {
		s.lines.Reset()
		s.tailLog.Info("log reset detected, reading from start")
	}

	var events []syndicate.Event
	var changes []StandingChange
	now := time.Now()
	for _, line := range s.lines.Feed(chunk.Text) {
		ev, ok := logparse.Extract(line)
		if !ok {
			continue
		}
		s.parseLog.Debug("standing line", zap.String("line", line), zap.Stringer("event", ev))
		value, err := s.ledger.Apply(ev)
		if err != nil {
			s.ledgerLog.Error("apply standing change", zap.Error(err))
			continue
		}
		change := StandingChange{Faction: ev.Faction, Delta: ev.Delta, Value: value, At: now}
		s.record(change)
		events = append(events, ev)
		changes = append(changes, change)
		s.ledgerLog.Debug("standing change",
			zap.String("faction", ev.Faction.Key()),
			zap.Int("delta", ev.Delta),
			zap.Float64("value", value))
	}
	return events, changes, nil
}

// record prepends c to the history, newest first.
func (s *Session) record(c StandingChange) {
	if s.opts.HistoryLimit <= 0 {
		return
	}
	s.history = append([]StandingChange{c}, s.history...)
	if len(s.history) > s.opts.HistoryLimit {
		s.history = s.history[:s.opts.HistoryLimit]
	}
}

func (s *Session) onChange() {
	if _, err := s.Poll(); err != nil {
		switch {
		case errors.Is(err, ErrNotWatching):
		case errors.Is(err, logtail.ErrNotFound):
			s.tailLog.Warn("log file missing, waiting for it to reappear", zap.Error(err))
		default:
			s.tailLog.Warn("log poll failed", zap.Error(err))
		}
	}
}

// SetManual overwrites one faction's standing.
func (s *Session) SetManual(f syndicate.Faction, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Set(f, value); err != nil {
		return fmt.Errorf("set standing: %w", err)
	}
	s.ledgerLog.Debug("manual standing", zap.String("faction", f.Key()), zap.Float64("value", value))
	return nil
}

// Standings returns the current standing of every faction.
func (s *Session) Standings() syndicate.Standings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// Project runs the projection engine on the current standings.
func (s *Session) Project(plan planner.FarmPlan) planner.Projection {
	return planner.Project(s.Standings(), plan)
}

// Recommend runs the recommendation engine on the current standings.
func (s *Session) Recommend() planner.Recommendation {
	return planner.Recommend(s.Standings())
}

// History returns recent standing changes, newest first.
func (s *Session) History() []StandingChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StandingChange, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) isClosed() bool {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	return s.closed
}

func (s *Session) emit(n Notice) {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.notices <- n:
	default:
		s.log.Warn("notice buffer full, dropping notice", zap.String("notice", n.String()))
	}
}
