package sir

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// streamWriter serializes writes to a single stdio stream behind its own
// mutex. The source relies on the C stdio implementation's own internal
// locking on Unix and only adds an explicit lock on Windows; Go's os.File
// has no such implicit serialization on any platform; RF-1 in SPEC_FULL.md
// documents this as a deliberate redesign, not a style choice.
type streamWriter struct {
	mu    sync.Mutex
	out   io.Writer
	isTTY bool
}

// newStreamWriter wraps f for serialized writes, auto-detecting whether it
// is attached to a terminal (so the Dispatcher knows whether to emit ANSI
// styling) and, on Windows, wrapping it with a colorable writer so the same
// ANSI bytes work there too instead of a hand-rolled console-attribute path.
func newStreamWriter(f *os.File) *streamWriter {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	var out io.Writer = f
	if tty {
		out = colorable.NewColorable(f)
	}
	return &streamWriter{out: out, isTTY: tty}
}

func (w *streamWriter) write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}
