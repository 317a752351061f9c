package galextract

import "io"

// countingReader wraps an io.Reader and adds read bytes to the progress total.
type countingReader struct {
	r io.Reader
	p *progressData
}

func (cr countingReader) Read(b []byte) (int, error) {
	n, err := cr.r.Read(b)
	if cr.p != nil {
		cr.p.written.Add(int64(n))
	}
	return n, err
}
