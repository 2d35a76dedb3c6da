//go:build !harness

package transcript

import "github.com/stealthrocket/kmc/command"

// WriteCommand encodes c and writes it as a record of the transcript.
func (w *Writer) WriteCommand(c command.Command) error {
	w.encoded = command.Encode(w.encoded[:0], c)
	return w.WriteRecord(w.encoded)
}
