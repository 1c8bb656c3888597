package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/smazurov/ledviz/internal/logging"
)

// Reader reads lines from an io.Reader such as stdin or a recorded file.
type Reader struct {
	in     *bufio.Reader
	lines  lineBuffer
	eof    bool
	closer io.Closer
	desc   string
	logger *slog.Logger
}

// NewReader wraps r. If r is an io.Closer it is closed by Close.
func NewReader(r io.Reader, desc string) *Reader {
	rd := &Reader{
		in:     bufio.NewReaderSize(r, 64*1024),
		desc:   desc,
		logger: logging.GetLogger("source"),
	}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

// Stdin reads from standard input. Close leaves stdin open.
func Stdin() *Reader {
	return NewReader(io.NopCloser(os.Stdin), "stdin")
}

// OpenFile reads recorded frames from path.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(ErrCodeOpenFailed, "failed to open "+path, err)
	}
	return NewReader(f, "file:"+path), nil
}

// Next returns the next line. Lines longer than MaxLineBytes are skipped.
// A blocked read is not interrupted by ctx; cancellation is observed before
// each read.
func (r *Reader) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if line, ok := r.lines.next(); ok {
			return line, nil
		}
		if r.eof {
			if line, ok := r.lines.flush(); ok {
				return line, nil
			}
			return "", io.EOF
		}

		chunk, err := r.in.ReadSlice('\n')
		if !r.lines.write(chunk) {
			r.logger.Warn("Discarded oversized line", "source", r.desc, "limit", MaxLineBytes)
		}
		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			r.eof = true
		default:
			return "", NewError(ErrCodeReadFailed, "failed to read "+r.desc, err)
		}
	}
}

// Close releases the underlying reader.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Describe implements LineSource.
func (r *Reader) Describe() string {
	return r.desc
}
