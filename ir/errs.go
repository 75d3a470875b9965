package ir

import "errors"

var (
	ErrParse     = errors.New("parse error")
	ErrNotScalar = errors.New("not a scalar")
	ErrBadTag    = errors.New("bad tag")
)
