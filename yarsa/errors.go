package yarsa

import "errors"

var (
	ErrKeyBitsTooSmall    = errors.New("key bit length too small")
	ErrKeyBitsOdd         = errors.New("key bit length must be even")
	ErrPrimeCollision     = errors.New("generated primes collided")
	ErrNoPublicExponent   = errors.New("no co-prime public exponent within search bound")
	ErrNoModularInverse   = errors.New("no modular inverse for public exponent")
	ErrMalformedKeyRecord = errors.New("malformed key record")
)
