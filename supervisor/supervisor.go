// Package supervisor owns one fetcher's lifecycle, per spec.md §4.6: start,
// stop, restart and delete it, and report its status. It mirrors the
// teacher's once-guarded singleton-constructor style, generalized to a
// value a caller can construct, name and supervise more than one of.
package supervisor

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ecbrates/ecbrates/fetcher"
)

// Status is the fetcher child's lifecycle state. fetcher_status() only ever
// reports one of these three (spec.md §4.6); delete returns the child all
// the way back to NotStarted rather than to a separate terminal state, per
// the explicit transition list in spec.md §4.4 ("delete from stopped ->
// not_started").
type Status int

const (
	NotStarted Status = iota
	Running
	Stopped
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrAlreadyStarted is returned by StartFetcher when the child is already
// running.
var ErrAlreadyStarted = fmt.Errorf("supervisor: fetcher already started")

// ErrInvalidTransition is returned when a lifecycle operation is invoked
// from a state that doesn't allow it (e.g. Restart on a never-started
// child).
var ErrInvalidTransition = fmt.Errorf("supervisor: invalid lifecycle transition")

// Options configures a Supervisor.
type Options struct {
	// Name identifies this supervisor instance in logs. Defaults to a
	// generated UUID when empty.
	Name string
	// AutoStart starts the fetcher immediately on New. nil defaults to true
	// per spec.md §6 ("auto_start (default true)"); use a pointer so the
	// spec's default can differ from Go's own bool zero value.
	AutoStart *bool
	// FetcherOptions is passed to fetcher.New on every (re)start.
	FetcherOptions fetcher.Options
	// Logger receives lifecycle transition notices.
	Logger *log.Logger
}

// autoStart resolves the default.
func (o Options) autoStart() bool {
	if o.AutoStart == nil {
		return true
	}
	return *o.AutoStart
}

// Supervisor controls exactly one fetcher child.
type Supervisor struct {
	name string
	opts Options

	mu     sync.Mutex
	status Status
	child  *fetcher.Fetcher
}

// New constructs a Supervisor. When opts.AutoStart is unset it defaults to
// true, per spec.md §6. If AutoStart is true, the fetcher is started before
// New returns; a start failure is returned from New.
func New(opts Options) (*Supervisor, error) {
	if opts.Name == "" {
		opts.Name = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Supervisor{name: opts.Name, opts: opts, status: NotStarted}

	if opts.autoStart() {
		if _, err := s.StartFetcher(context.Background()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name is this supervisor's process identity.
func (s *Supervisor) Name() string { return s.name }

// StartFetcher transitions not_started or stopped -> running. Starting an
// already-running fetcher returns ErrAlreadyStarted.
func (s *Supervisor) StartFetcher(ctx context.Context) (*fetcher.Fetcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == Running {
		return nil, ErrAlreadyStarted
	}

	child := fetcher.New(s.opts.FetcherOptions)
	if err := child.Start(ctx); err != nil {
		return nil, fmt.Errorf("supervisor: starting fetcher: %w", err)
	}
	s.child = child
	s.status = Running
	s.opts.Logger.Info("fetcher started", "supervisor", s.name, "fetcher", child.ID())
	return child, nil
}

// StopFetcher transitions running -> stopped.
func (s *Supervisor) StopFetcher(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Running {
		return fmt.Errorf("supervisor: %w: fetcher is %s, not running", ErrInvalidTransition, s.status)
	}
	if err := s.child.Stop(ctx); err != nil {
		return fmt.Errorf("supervisor: stopping fetcher: %w", err)
	}
	s.status = Stopped
	s.opts.Logger.Info("fetcher stopped", "supervisor", s.name)
	return nil
}

// RestartFetcher transitions stopped -> running by constructing a fresh
// fetcher child with the same options.
func (s *Supervisor) RestartFetcher(ctx context.Context) (*fetcher.Fetcher, error) {
	s.mu.Lock()
	if s.status != Stopped {
		status := s.status
		s.mu.Unlock()
		return nil, fmt.Errorf("supervisor: %w: fetcher is %s, not stopped", ErrInvalidTransition, status)
	}
	s.mu.Unlock()

	s.mu.Lock()
	s.status = NotStarted
	s.mu.Unlock()
	return s.StartFetcher(ctx)
}

// DeleteFetcher transitions stopped -> not_started, discarding the child.
// A subsequent StartFetcher builds a brand new one.
func (s *Supervisor) DeleteFetcher() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Stopped {
		return fmt.Errorf("supervisor: %w: fetcher is %s, not stopped", ErrInvalidTransition, s.status)
	}
	s.child = nil
	s.status = NotStarted
	s.opts.Logger.Info("fetcher deleted", "supervisor", s.name)
	return nil
}

// FetcherStatus reports the child's current lifecycle state.
func (s *Supervisor) FetcherStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// FetcherInitiated reports whether a fetcher child currently exists, running
// or stopped. It is false before the first start and again after
// DeleteFetcher.
func (s *Supervisor) FetcherInitiated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != NotStarted
}

// FetcherRunning reports whether the fetcher is currently running.
func (s *Supervisor) FetcherRunning() bool {
	return s.FetcherStatus() == Running
}

// Child returns the currently supervised fetcher (running or stopped), or
// nil if none has been started or it was deleted.
func (s *Supervisor) Child() *fetcher.Fetcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child
}

// Stop stops the supervisor itself: if the fetcher is running it is
// stopped first, then the stopped child is deleted, leaving the status at
// NotStarted.
func (s *Supervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	if status == Running {
		if err := s.StopFetcher(ctx); err != nil {
			return err
		}
	}
	if s.FetcherStatus() == Stopped {
		return s.DeleteFetcher()
	}
	return nil
}
