package reader

import "errors"

var (
	ErrReaderNotFound = errors.New("reader not found")
)
