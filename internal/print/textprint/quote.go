package textprint

import (
	"bytes"
	"io"
)

const quotePrefix = "    | "

// QuoteBytes returns a writer which indents the lines written to w with a
// quote marker. The final newline is held back so the quoted block does not
// end with an empty line.
func QuoteBytes(w io.Writer) io.Writer {
	return &quoteWriter{output: w, start: true}
}

type quoteWriter struct {
	output  io.Writer
	start   bool
	newline bool
}

func (q *quoteWriter) Write(b []byte) (int, error) {
	n := len(b)
	for len(b) > 0 {
		if q.newline {
			q.newline = false
			if _, err := q.output.Write([]byte{'\n'}); err != nil {
				return 0, err
			}
		}
		if q.start {
			q.start = false
			if _, err := io.WriteString(q.output, quotePrefix); err != nil {
				return 0, err
			}
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i]
			q.newline, q.start = true, true
			b = b[i+1:]
		} else {
			b = nil
		}
		if _, err := q.output.Write(line); err != nil {
			return 0, err
		}
	}
	return n, nil
}
