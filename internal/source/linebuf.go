package source

import "bytes"

// lineBuffer reassembles lines from arbitrarily chunked reads.
type lineBuffer struct {
	pending []byte
	// dropping is set after an overflow until the next newline.
	dropping bool
}

// write appends a chunk. It reports false when the pending line grew past
// MaxLineBytes and was discarded; the rest of that line is skipped silently.
func (b *lineBuffer) write(chunk []byte) bool {
	if b.dropping {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			return true
		}
		chunk = chunk[i+1:]
		b.dropping = false
	}

	b.pending = append(b.pending, chunk...)
	if bytes.IndexByte(b.pending, '\n') < 0 && len(b.pending) > MaxLineBytes {
		b.pending = b.pending[:0]
		b.dropping = true
		return false
	}
	return true
}

// next pops one complete line, without its terminator.
func (b *lineBuffer) next() (string, bool) {
	i := bytes.IndexByte(b.pending, '\n')
	if i < 0 {
		return "", false
	}
	line := b.pending[:i]
	b.pending = b.pending[i+1:]
	return string(bytes.TrimRight(line, "\r")), true
}

// flush returns an unterminated final line once the input has ended.
func (b *lineBuffer) flush() (string, bool) {
	line, dropped := b.pending, b.dropping
	b.pending, b.dropping = nil, false
	if dropped || len(line) == 0 {
		return "", false
	}
	return string(bytes.TrimRight(line, "\r")), true
}
