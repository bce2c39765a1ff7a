package report

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressNilWriterIsNoOp(t *testing.T) {
	p := NewProgress(nil, "validating")
	p.Start()
	p.Stop()
	// Stop is idempotent even with no goroutine ever started.
	p.Stop()
}

func TestProgressStartWritesSpinnerFrames(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex

	p := NewProgress(safeWriter{&buf, &mu}, "validating doc.xml")
	p.Start()
	time.Sleep(300 * time.Millisecond)
	p.Stop()

	mu.Lock()
	out := buf.String()
	mu.Unlock()

	assert.Contains(t, out, "validating doc.xml")
}

func TestProgressSetLabelUpdatesText(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex

	p := NewProgress(safeWriter{&buf, &mu}, "a.xml")
	p.Start()
	p.SetLabel("b.xml")
	time.Sleep(300 * time.Millisecond)
	p.Stop()

	mu.Lock()
	out := buf.String()
	mu.Unlock()

	assert.Contains(t, out, "b.xml")
}

func TestProgressStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex

	p := NewProgress(safeWriter{&buf, &mu}, "a.xml")
	p.Start()
	p.Stop()
	p.Stop()
}

// safeWriter guards a bytes.Buffer with a mutex so the spinner's ticking
// goroutine and the test's read of buf.String() never race.
type safeWriter struct {
	buf *bytes.Buffer
	mu  *sync.Mutex
}

func (w safeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}
