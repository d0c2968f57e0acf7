// Package progress shows a busy indicator while a completion is in flight.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Spinner is a running busy indicator.
type Spinner interface {
	Stop()
}

// Start shows a busy indicator with the given text on w. An animated
// spinner is used on an interactive terminal; in CI or when w is not a
// terminal a single status line is printed instead.
func Start(w io.Writer, text string) Spinner {
	if interactive(w) {
		return startTerminal(w, text)
	}
	return startLine(w, text)
}

func interactive(w io.Writer) bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// TerminalSpinner animates an indeterminate progress bar until stopped.
type TerminalSpinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func startTerminal(w io.Writer, text string) *TerminalSpinner {
	s := &TerminalSpinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(text),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		),
		done: make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				_ = s.bar.Add(1)
			}
		}
	}()
	return s
}

func (s *TerminalSpinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		_ = s.bar.Finish()
	})
}

// LineSpinner prints one status line and nothing on stop.
type LineSpinner struct{}

func startLine(w io.Writer, text string) LineSpinner {
	if text != "" {
		fmt.Fprintln(w, text)
	}
	return LineSpinner{}
}

func (LineSpinner) Stop() {}
