package errors

import "io"

// NewReader returns a new Reader that reads from r
// until an error is returned.
func NewReader(r io.Reader) *Reader {
	return &Reader{R: r}
}

// Reader is in an implementation of the
// "sticky error" pattern as described
// in https://blog.golang.org/errors-are-values.
//
// A Reader makes one call
// on the underlying reader for each call to Read,
// until an error is returned. From that point on,
// it makes no calls on the underlying reader,
// and returns the same error value every time.
type Reader struct {
	R   io.Reader
	N   int64
	Err error
}

// Read makes one call on the underlying reader
// if no error has previously occurred.
func (r *Reader) Read(buf []byte) (n int, err error) {
	if r.Err != nil {
		return 0, r.Err
	}
	n, r.Err = r.R.Read(buf)
	r.N += int64(n)
	return n, r.Err
}

// BytesRead returns the number of bytes read
// from the underlying reader.
func (r *Reader) BytesRead() int64 {
	return r.N
}
