package yakeystore

import "errors"

var (
	ErrEmptyName       = errors.New("key pair name must not be empty")
	ErrPairNotFound    = errors.New("key pair not found")
	ErrPairIncomplete  = errors.New("key pair is missing a record")
	ErrModulusMismatch = errors.New("public and private records disagree on the modulus")
)
