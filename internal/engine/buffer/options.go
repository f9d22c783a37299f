package buffer

import "github.com/dshills/quillpad/internal/logging"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithEncoder sets the per-character encoder used by Save.
func WithEncoder(enc EncodeFunc) Option {
	return func(b *Buffer) {
		if enc != nil {
			b.encode = enc
		}
	}
}

// WithLogger sets the logger that receives out-of-range diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}
