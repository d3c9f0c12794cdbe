// Package ioutil implements some I/O utility functions.
package ioutil

import (
	"bufio"
	"errors"
	"io"
)

// ErrEmptyReader is returned by NonEmptyReader for readers without data.
var ErrEmptyReader = errors.New("reader is empty")

// NonEmptyReader takes a reader and returns it if it is not empty, or
// ErrEmptyReader if it is. The returned reader must be used in place of r.
func NonEmptyReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyReader
		}

		return nil, err
	}

	return br, nil
}

// CheckClose calls Close on the given io.Closer. If the given *error points to
// nil, it will be assigned the error returned by Close. Otherwise, any error
// returned by Close will be ignored. CheckClose is usually called with defer.
func CheckClose(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
