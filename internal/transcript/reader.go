package transcript

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/stealthrocket/kmc/internal/stream"
	"github.com/stealthrocket/kmc/wire"
)

// Reader reads the records of a transcript.
type Reader struct {
	input     *bufio.Reader
	header    Header
	headerErr error
	started   bool
	frame     []byte
	batch     []byte
	remain    int
}

// NewReader constructs a Reader consuming the transcript from input.
func NewReader(input io.Reader) *Reader {
	return &Reader{input: bufio.NewReaderSize(input, 64*1024)}
}

// Header reads and returns the transcript header.
func (r *Reader) Header() (Header, error) {
	if !r.started {
		r.started = true
		r.header, r.headerErr = readHeader(r.input)
	}
	return r.header, r.headerErr
}

// Read reads records from r. The error is io.EOF at the end of the
// transcript.
//
// The records share the memory buffer of the reader, they remain valid until
// the next call to Read.
func (r *Reader) Read(records [][]byte) (n int, err error) {
	if _, err := r.Header(); err != nil {
		return 0, err
	}
	for r.remain == 0 {
		if err := r.readBatch(); err != nil {
			return 0, err
		}
	}
	for n < len(records) && r.remain > 0 {
		if len(r.batch) < 4 {
			return n, wire.ShortBuffer("transcript record", 4, len(r.batch))
		}
		size := binary.LittleEndian.Uint32(r.batch)
		if uint64(size) > uint64(len(r.batch)-4) {
			return n, wire.ShortBuffer("transcript record", int(size), len(r.batch)-4)
		}
		records[n] = r.batch[4 : 4+size : 4+size]
		r.batch = r.batch[4+size:]
		r.remain--
		n++
	}
	if r.remain == 0 && len(r.batch) != 0 {
		return n, wire.Malformed("%d trailing bytes after the last record of a transcript batch", len(r.batch))
	}
	return n, nil
}

func (r *Reader) readBatch() error {
	var size [4]byte
	if n, err := io.ReadFull(r.input, size[:]); err != nil {
		if err == io.EOF && n == 0 {
			return io.EOF
		}
		return fmt.Errorf("reading transcript batch: %w", wire.ShortBuffer("batch size", 4, n))
	}
	frameSize := binary.LittleEndian.Uint32(size[:])
	if frameSize > maxFrameSize {
		return wire.Malformed("transcript batch is too large (%d>%d)", frameSize, maxFrameSize)
	}
	if frameSize < batchHeaderSize-4 {
		return wire.Malformed("transcript batch is too small (%d<%d)", frameSize, batchHeaderSize-4)
	}

	if cap(r.frame) < int(frameSize) {
		r.frame = make([]byte, frameSize)
	}
	r.frame = r.frame[:frameSize]
	if n, err := io.ReadFull(r.input, r.frame); err != nil {
		return fmt.Errorf("reading %dB transcript batch: %w", frameSize, wire.ShortBuffer("batch", int(frameSize), n))
	}

	count := binary.LittleEndian.Uint32(r.frame[0:])
	if count == 0 {
		return wire.Malformed("empty transcript batch")
	}
	compression := Compression(r.frame[4])
	batch, err := decompress(r.batch[:0], r.frame[5:], compression)
	if err != nil {
		return fmt.Errorf("decompressing %s transcript batch: %w", compression, err)
	}
	r.batch, r.remain = batch, int(count)
	return nil
}

var _ stream.Reader[[]byte] = (*Reader)(nil)
