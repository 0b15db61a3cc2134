package yacodec

import "errors"

var (
	ErrModulusTooSmall = errors.New("modulus too small to carry one payload byte per block")
	ErrMessageTooLong  = errors.New("message length exceeds the frame header range")
	ErrNotText         = errors.New("message is not valid UTF-8")
	ErrBlockOutOfRange = errors.New("block value out of range for the modulus")
	ErrBadFrame        = errors.New("decrypted bytes do not form a valid frame")
)
