package buffer

import (
	"fmt"
	"io"
	"os"
)

// Load replaces the buffer content with the UTF-8 decoded contents of the
// file at path. If the file cannot be opened or read the buffer keeps its
// previous content and the error is returned.
func (b *Buffer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		b.logger.Error("error opening file: %s", path)
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := b.LoadFrom(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// LoadFrom replaces the buffer content with everything read from r.
// Invalid UTF-8 sequences decode to U+FFFD.
func (b *Buffer) LoadFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	b.chars = []rune(string(data))
	b.rebuildIndex()
	b.changed = false
	return nil
}

// Save writes the buffer to path through the configured encoder, creating or
// truncating the file. The changed flag is cleared only on success.
func (b *Buffer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		b.logger.Error("error opening file: %s", path)
		return fmt.Errorf("opening %s: %w", path, err)
	}

	changed := b.changed
	if err := b.SaveTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		b.changed = changed
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// SaveTo encodes every codepoint with the configured encoder and writes the
// result to w. The changed flag is cleared on success.
func (b *Buffer) SaveTo(w io.Writer) error {
	out := make([]byte, 0, len(b.chars))
	for _, r := range b.chars {
		out = b.encode(out, r)
	}

	if _, err := w.Write(out); err != nil {
		return err
	}
	b.changed = false
	return nil
}
