package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Progress reports ongoing single-file validation progress via a spinner
// bound to an io.Writer: a small ticking goroutine repaints the spinner
// frame and label until Stop is called.
type Progress struct {
	out     io.Writer
	label   string
	model   spinner.Model
	mu      sync.Mutex
	done    chan struct{}
	stopped bool
}

// NewProgress returns a Progress writing to out, or a no-op Progress if out
// is nil (the caller's --quiet / non-TTY suppression path).
func NewProgress(out io.Writer, label string) *Progress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return &Progress{out: out, label: label, model: s, done: make(chan struct{})}
}

// Start begins rendering the spinner at a fixed tick rate until Stop is
// called. A nil out makes Start a no-op, for suppressed/non-interactive runs.
func (p *Progress) Start() {
	if p.out == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				p.mu.Lock()
				updated, _ := p.model.Update(spinner.TickMsg{Time: time.Now()})
				p.model = updated
				fmt.Fprintf(p.out, "\r%s %s", p.model.View(), p.label)
				p.mu.Unlock()
			}
		}
	}()
}

// Stop halts the spinner and clears its line.
func (p *Progress) Stop() {
	if p.out == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	close(p.done)
	fmt.Fprint(p.out, "\r\033[K")
}

// SetLabel updates the text shown beside the spinner, e.g. the current file
// name during a multi-file run.
func (p *Progress) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
}
