package yacipher

import "errors"

var (
	ErrBlockNotBelowModulus = errors.New("plaintext block not below the modulus")
	ErrNilBlock             = errors.New("nil block in sequence")
	ErrMalformedEnvelope    = errors.New("malformed ciphertext envelope")
)
