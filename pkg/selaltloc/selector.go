// 12 Oct 2026

package selaltloc

import (
	"errors"
	"io"

	"github.com/andrew-torda/pdbtools/pdb/record"
	"github.com/charmbracelet/log"
)

// Options control the selection. With UseLabel false, conformers are
// chosen by occupancy and Label is ignored.
type Options struct {
	Label    byte
	UseLabel bool
	Logger   *log.Logger // nil means no logging
}

// Stats are counts kept while running.
type Stats struct {
	Lines     int // lines fed in
	Out       int // lines emitted
	Groups    int // groups flushed
	Partial   int
	Full      int
	Fallbacks int // groups written unchanged since no choice was possible
	Dropped   int // coordinate records left out
}

// Selector works through a stream one line at a time. Every line fed
// in produces zero or more lines, which are handed to emit straight
// away. Lines for a group of alternates are held back until the group
// is complete.
type Selector struct {
	opts  Options
	emit  func(string)
	log   *log.Logger
	group *Group
	prev  tracker
	nLine int
	stats Stats
	done  bool
}

// NewSelector returns a selector which passes its output to emit.
func NewSelector(opts Options, emit func(string)) *Selector {
	lg := opts.Logger
	if lg == nil {
		lg = log.New(io.Discard)
	}
	return &Selector{opts: opts, emit: emit, log: lg, group: newGroup()}
}

var errFinished = errors.New("selaltloc: Feed called after Finish")

// Feed takes one line, including its line ending.
// Errors are fatal, the selector should not be used afterwards.
func (s *Selector) Feed(line string) error {
	if s.done {
		return errFinished
	}
	s.nLine++
	s.stats.Lines++
	if record.Classify(line) != record.Coord {
		if err := s.flush(); err != nil {
			return err
		}
		s.prev = tracker{}
		s.out(line)
		return nil
	}
	a, err := record.Parse(line)
	if err != nil {
		var perr *record.ParseError
		if errors.As(err, &perr) {
			perr.N = s.nLine
		}
		return err
	}
	if isAnotherGroup(s.prev, a, s.group) {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.group.add(a)
	s.prev = track(a)
	return nil
}

// Finish flushes whatever is left at the end of the stream.
func (s *Selector) Finish() error {
	if s.done {
		return nil
	}
	s.done = true
	err := s.flush()
	s.log.Debug("finished", "lines", s.stats.Lines, "out", s.stats.Out,
		"groups", s.stats.Groups, "partial", s.stats.Partial, "full", s.stats.Full,
		"fallbacks", s.stats.Fallbacks, "dropped", s.stats.Dropped)
	return err
}

// Stats returns the counts so far.
func (s *Selector) Stats() Stats { return s.stats }
