package source

import (
	"strings"
	"testing"
)

func TestLineBuffer_Chunked(t *testing.T) {
	var b lineBuffer
	chunks := []string{"FRA", "ME:FF00", "00\r\nMETA:W", "=4\npar", "tial"}

	var got []string
	for _, c := range chunks {
		if !b.write([]byte(c)) {
			t.Fatalf("write(%q) reported overflow", c)
		}
		for {
			line, ok := b.next()
			if !ok {
				break
			}
			got = append(got, line)
		}
	}

	want := []string{"FRAME:FF0000", "META:W=4"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", got, want)
	}
	if string(b.pending) != "partial" {
		t.Errorf("pending = %q, want partial", b.pending)
	}
}

func TestLineBuffer_OverflowDropsRestOfLine(t *testing.T) {
	var b lineBuffer
	if b.write([]byte(strings.Repeat("x", MaxLineBytes+1))) {
		t.Fatal("oversized line accepted")
	}
	b.write([]byte("tail of the junk\nFRAME:000000\n"))

	line, ok := b.next()
	if !ok || line != "FRAME:000000" {
		t.Errorf("next() = %q, %v; want the line after the junk", line, ok)
	}
	if _, ok := b.next(); ok {
		t.Error("unexpected extra line")
	}
}

func TestLineBuffer_OverflowAcrossChunks(t *testing.T) {
	var b lineBuffer
	chunk := []byte(strings.Repeat("x", MaxLineBytes/2+1))

	overflows := 0
	for i := 0; i < 6; i++ {
		if !b.write(chunk) {
			overflows++
		}
	}
	if overflows != 1 {
		t.Errorf("overflow reported %d times, want once per line", overflows)
	}
	if len(b.pending) != 0 {
		t.Errorf("pending grew to %d bytes while dropping", len(b.pending))
	}

	b.write([]byte("xx\nMETA:W=2"))
	if _, ok := b.next(); ok {
		t.Error("unterminated line returned by next")
	}
	if line, ok := b.flush(); !ok || line != "META:W=2" {
		t.Errorf("flush() = %q, %v", line, ok)
	}
}

func TestLineBuffer_FlushDiscardsDroppedTail(t *testing.T) {
	var b lineBuffer
	b.write([]byte(strings.Repeat("x", MaxLineBytes+1)))
	b.write([]byte("more junk"))
	if line, ok := b.flush(); ok {
		t.Errorf("flush() = %q, want nothing", line)
	}
}
