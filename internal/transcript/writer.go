package transcript

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// DefaultBatchSize is the number of records buffered by a Writer before
	// it flushes a batch.
	DefaultBatchSize = 1024

	maxFrameSize = (1 * 1024 * 1024) - 4

	batchHeaderSize = 4 + 4 + 1
)

// Writer writes records to a transcript.
//
// Records are buffered and written in batches. The header is written before
// the first batch, or when the writer is closed if no records were written.
type Writer struct {
	output    io.Writer
	header    Header
	batchSize int
	count     int
	records   []byte
	frame     []byte
	encoded   []byte
	started   bool
	// When writing to the underlying io.Writer causes an error, we stop
	// accepting writes and assume the transcript is corrupted.
	stickyErr error
}

// NewWriter constructs a Writer producing a transcript with the given header
// to output. A batchSize less than or equal to zero selects DefaultBatchSize.
func NewWriter(output io.Writer, header Header, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Writer{
		output:    output,
		header:    header,
		batchSize: batchSize,
	}
}

// Header returns the header of the transcript.
func (w *Writer) Header() Header { return w.header }

// WriteRecord buffers a record and flushes the batch once it reaches the
// configured number of records.
//
// The record is copied and can be reused when the call returns.
func (w *Writer) WriteRecord(record []byte) error {
	if w.stickyErr != nil {
		return w.stickyErr
	}
	if uint64(len(record)) > math.MaxUint32 || 4+len(record)+batchHeaderSize > maxFrameSize {
		return fmt.Errorf("transcript record is too large (%d>%d)", len(record), maxFrameSize-batchHeaderSize-4)
	}
	if batchHeaderSize+len(w.records)+4+len(record) > maxFrameSize {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	w.records = binary.LittleEndian.AppendUint32(w.records, uint32(len(record)))
	w.records = append(w.records, record...)
	w.count++
	if w.count >= w.batchSize {
		return w.Flush()
	}
	return nil
}

// Flush writes the pending batch.
func (w *Writer) Flush() error {
	if w.stickyErr != nil {
		return w.stickyErr
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if w.count == 0 {
		return nil
	}

	w.frame = append(w.frame[:0], make([]byte, batchHeaderSize)...)
	payload := compress(w.frame[batchHeaderSize:], w.records, w.header.Compression)
	// Batches that do not shrink are written as-is, the reader accepts any
	// compression per batch.
	compression := w.header.Compression
	if len(payload) >= len(w.records) {
		payload, compression = w.records, Uncompressed
	}

	binary.LittleEndian.PutUint32(w.frame[0:], uint32(4+1+len(payload)))
	binary.LittleEndian.PutUint32(w.frame[4:], uint32(w.count))
	w.frame[8] = byte(compression)
	w.frame = append(w.frame[:batchHeaderSize], payload...)

	if _, err := w.output.Write(w.frame); err != nil {
		w.stickyErr = fmt.Errorf("writing transcript batch: %w", err)
		return w.stickyErr
	}
	w.count = 0
	w.records = w.records[:0]
	return nil
}

// Close flushes the pending batch. It does not close the underlying writer.
func (w *Writer) Close() error {
	return w.Flush()
}

func (w *Writer) writeHeader() error {
	if w.started {
		return nil
	}
	w.started = true
	if _, err := w.output.Write(w.header.append(nil)); err != nil {
		w.stickyErr = fmt.Errorf("writing transcript header: %w", err)
		return w.stickyErr
	}
	return nil
}
