// Package spinner draws a progress indicator on stderr while slow sources load.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameDelay = 80 * time.Millisecond

// Spinner animates a message on a single line until stopped.
type Spinner struct {
	writer io.Writer

	mu      sync.Mutex
	message string
	stop    chan struct{}
	done    chan struct{}
}

// New creates a stopped spinner writing to w.
func New(w io.Writer, message string) *Spinner {
	return &Spinner{writer: w, message: message}
}

// Interactive reports whether w is a terminal, the only place a spinner makes sense.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// While runs fn, animating message on w meanwhile when w is a terminal.
func While(ctx context.Context, w io.Writer, message string, fn func() error) error {
	if !Interactive(w) {
		return fn()
	}
	s := New(w, message)
	s.Start(ctx)
	defer s.Stop()
	return fn()
}

// Start begins the animation; it stops by itself when ctx is done.
// Starting a running spinner does nothing.
func (s *Spinner) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(ctx, s.stop, s.done)
}

// Stop ends the animation and clears the line. Stopping a stopped spinner does nothing.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stop == nil {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	done := s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	<-done

	if Interactive(s.writer) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// SetMessage replaces the message shown next to the animation.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			message := s.message
			s.mu.Unlock()
			fmt.Fprintf(s.writer, "\r%s %s", frames[i%len(frames)], message)
		}
	}
}
