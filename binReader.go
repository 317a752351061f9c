package galextract

import (
	"bufio"
	"os"
)

type BinReader struct {
	file   *os.File
	reader *bufio.Reader
}

func NewBinReader(path string) (*BinReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &BinReader{
		file:   f,
		reader: bufio.NewReaderSize(f, readBuffer),
	}, nil
}

func (br *BinReader) Read(p []byte) (int, error) {
	return br.reader.Read(p)
}

// Peek returns the next n bytes without consuming them. At end of file fewer
// bytes may be returned along with the error.
func (br *BinReader) Peek(n int) ([]byte, error) {
	return br.reader.Peek(n)
}

// Discard consumes n bytes from the buffer.
func (br *BinReader) Discard(n int) (int, error) {
	return br.reader.Discard(n)
}

func (br *BinReader) Close() error {
	return br.file.Close()
}

func (br *BinReader) Seek(offset int64, whence int) (int64, error) {
	// Seek the underlying file
	pos, err := br.file.Seek(offset, whence)
	if err != nil {
		return 0, err
	}

	// Reset the buffered reader to discard its buffer
	br.reader.Reset(br.file)

	return pos, nil
}
