package engine

import (
	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/logging"
)

// DefaultTabWidth is the display cost of a tab character.
const DefaultTabWidth = 4

// Option configures a Session during creation.
type Option func(*Session)

// WithContent sets the initial content of the session.
func WithContent(content string) Option {
	return func(s *Session) {
		s.initContent = content
	}
}

// WithTabWidth sets the number of display columns a tab adds.
func WithTabWidth(width int) Option {
	return func(s *Session) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}

// WithEncoder sets the per-character encoder used when saving.
func WithEncoder(enc buffer.EncodeFunc) Option {
	return func(s *Session) {
		if enc != nil {
			s.encoder = enc
		}
	}
}

// WithLogger sets the logger for the session and its buffer.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.baseLogger = l
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}
