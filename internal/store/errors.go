package store

import "errors"

var (
	ErrBadValue = errors.New("bad stored value")
	ErrClosed   = errors.New("store closed")
	ErrEmptyKey = errors.New("empty key")
)
