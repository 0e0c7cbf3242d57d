package feed

import (
	"bufio"
	"io"
)

// OutputSink is a destination for framed events. Write receives exactly one
// complete frame per call; Flush pushes it to the consumer immediately.
type OutputSink interface {
	io.Writer
	Flush() error
}

// WriterSink adapts a plain io.Writer (typically stdout) into an OutputSink.
type WriterSink struct {
	w *bufio.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *WriterSink) Flush() error                { return s.w.Flush() }

type multiSink []OutputSink

// MultiSink fans one frame out to every sink. The first error is returned but
// remaining sinks still receive the frame.
func MultiSink(sinks ...OutputSink) OutputSink {
	return multiSink(sinks)
}

func (m multiSink) Write(p []byte) (int, error) {
	var firstErr error
	for _, s := range m {
		if _, err := s.Write(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return len(p), firstErr
}

func (m multiSink) Flush() error {
	var firstErr error
	for _, s := range m {
		if err := s.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
