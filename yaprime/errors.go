package yaprime

import "errors"

var (
	ErrBitsTooSmall = errors.New("prime bit length too small")
	ErrRandRead     = errors.New("random source read failed")
)
