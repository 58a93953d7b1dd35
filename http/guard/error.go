package guard

import "errors"

var (
	ErrAlreadyBuilt     = errors.New("already built")
	ErrConflictingMount = errors.New("conflicting mount")
	ErrConflictingPath  = errors.New("conflicting path")
	ErrDuplicateMethod  = errors.New("duplicate method")
	ErrEmptyActions     = errors.New("empty actions")
)
