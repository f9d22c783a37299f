// Package clipboard provides the copy/paste registers used by the host.
//
// System talks to the OS clipboard through github.com/atotto/clipboard and
// keeps an in-memory copy so paste still works on machines without a
// clipboard utility (headless sessions, SSH without X forwarding).
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/dshills/quillpad/internal/logging"
)

// Register stores the text of the last copy or cut.
type Register interface {
	// Write replaces the register contents.
	Write(text string) error
	// Read returns the register contents.
	Read() (string, error)
}

// Memory is a process-local register.
type Memory struct {
	text string
}

// NewMemory creates an empty in-memory register.
func NewMemory() *Memory {
	return &Memory{}
}

// Write replaces the register contents.
func (m *Memory) Write(text string) error {
	m.text = text
	return nil
}

// Read returns the register contents.
func (m *Memory) Read() (string, error) {
	return m.text, nil
}

// System is a register backed by the OS clipboard.
type System struct {
	fallback *Memory
	logger   *logging.Logger

	writeAll func(string) error
	readAll  func() (string, error)
}

// NewSystem creates an OS clipboard register. Failures of the OS
// clipboard are logged and served from memory.
func NewSystem(logger *logging.Logger) *System {
	if logger == nil {
		logger = logging.Default()
	}
	return &System{
		fallback: NewMemory(),
		logger:   logger.WithComponent("clipboard"),
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
}

// Available reports whether the OS clipboard can be used at all.
func Available() bool {
	return !clipboard.Unsupported
}

// Write stores text in memory and on the OS clipboard.
func (s *System) Write(text string) error {
	_ = s.fallback.Write(text)
	if err := s.writeAll(text); err != nil {
		s.logger.Warn("system clipboard write failed: %v", err)
	}
	return nil
}

// Read prefers the OS clipboard so text copied in other programs can be
// pasted, and falls back to the last text written here.
func (s *System) Read() (string, error) {
	text, err := s.readAll()
	if err != nil {
		s.logger.Warn("system clipboard read failed: %v", err)
		return s.fallback.Read()
	}
	return text, nil
}

// New returns a System register when useSystem is set and the platform
// has a clipboard, and a Memory register otherwise.
func New(useSystem bool, logger *logging.Logger) Register {
	if useSystem && Available() {
		return NewSystem(logger)
	}
	return NewMemory()
}
