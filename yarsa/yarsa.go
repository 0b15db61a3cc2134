// Package yarsa derives RSA key pairs from independently generated primes.
//
// A key pair is three big integers: the modulus n = p*q, the public exponent
// e co-prime to phi(n) = (p-1)(q-1), and the private exponent d, the modular
// inverse of e modulo phi(n). The primes themselves are generation
// intermediates and are not retained.
//
// This is an educational implementation: arithmetic is exact and failure
// modes are explicit, but nothing here is constant-time. Do not use it to
// protect real data.
package yarsa

import (
	"fmt"
	"io"
	"math/big"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yaprime"
)

const (
	// MinKeyBits is the smallest accepted modulus size. Toy sizes are
	// allowed on purpose so the arithmetic can be exercised quickly;
	// anything below RecommendedKeyBits is insecure.
	MinKeyBits = 16

	// RecommendedKeyBits is the smallest size worth demonstrating with.
	RecommendedKeyBits = 512

	// DefaultExponent is the conventional public exponent tried first.
	DefaultExponent = 65537

	// smallExponent seeds the search when phi is too small for the
	// conventional exponent (toy key sizes).
	smallExponent = 3

	// primeRetryBudget bounds regeneration after a p = q collision.
	primeRetryBudget = 8

	// exponentSearchLimit bounds the upward search for a co-prime e.
	exponentSearchLimit = 1 << 16
)

var bigOne = big.NewInt(1)

// Key is one half of a key pair: the modulus and a single exponent. Public
// and private keys have the same shape and are kept in separate records.
type Key struct {
	N   *big.Int
	Exp *big.Int
}

// KeyPair holds a full RSA key pair. Values are never mutated after
// generation; treat the struct as immutable.
type KeyPair struct {
	N *big.Int
	E *big.Int
	D *big.Int
}

// Public returns the encryption key (e, n).
func (kp *KeyPair) Public() Key {
	return Key{N: kp.N, Exp: kp.E}
}

// Private returns the decryption key (d, n).
func (kp *KeyPair) Private() Key {
	return Key{N: kp.N, Exp: kp.D}
}

// Bits returns the modulus bit length.
func (kp *KeyPair) Bits() int {
	return kp.N.BitLen()
}

// KeyOpts holds optional knobs for GenerateKeyPair.
//   - Exponent: first public exponent candidate (DefaultExponent if 0).
//   - Rounds: Miller-Rabin rounds per prime candidate.
//   - Rand: candidate byte source (crypto/rand.Reader if nil). Supply a
//     yaprime.DeterministicReader for a reproducible key pair.
type KeyOpts struct {
	Exponent int
	Rounds   int
	Rand     io.Reader
}

// GenerateKeyPair generates an RSA key pair with a modulus of roughly `bits`
// bits: two independent primes at bits/2 each, multiplied together.
//
// The p = q collision is explicitly guarded: q is regenerated up to
// primeRetryBudget times, and exhaustion is a CodeKeyGeneration failure
// rather than a silently broken key. The public exponent starts at
// KeyOpts.Exponent (or DefaultExponent; smallExponent when phi is smaller
// than that) and walks upward over odd values until gcd(e, phi) = 1.
//
// Example usage:
//
//	pair, err := yarsa.GenerateKeyPair(2048, nil)
//	if err != nil {
//	    log.Fatalf("failed to generate key pair: %v", err)
//	}
//
//	fmt.Println("modulus bits:", pair.Bits())
func GenerateKeyPair(bits int, opts *KeyOpts) (*KeyPair, yaerrors.Error) {
	if bits < MinKeyBits {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrKeyBitsTooSmall,
			fmt.Sprintf("generate key pair: %d bits, minimum %d", bits, MinKeyBits),
		)
	}

	if bits%2 != 0 {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrKeyBitsOdd,
			fmt.Sprintf("generate key pair: %d bits", bits),
		)
	}

	exponent := DefaultExponent

	primeOpts := &yaprime.GenerateOpts{}

	if opts != nil {
		if opts.Exponent > 0 {
			exponent = opts.Exponent
		}

		primeOpts.Rounds = opts.Rounds
		primeOpts.Rand = opts.Rand
	}

	halfBits := bits / 2

	p, err := yaprime.GeneratePrime(halfBits, primeOpts)
	if err != nil {
		return nil, err.Wrap("failed to generate first prime")
	}

	var q *big.Int

	for attempt := 0; ; attempt++ {
		if attempt == primeRetryBudget {
			return nil, yaerrors.FromError(
				yaerrors.CodeKeyGeneration,
				ErrPrimeCollision,
				fmt.Sprintf("generate key pair: %d regeneration attempts", primeRetryBudget),
			)
		}

		q, err = yaprime.GeneratePrime(halfBits, primeOpts)
		if err != nil {
			return nil, err.Wrap("failed to generate second prime")
		}

		if p.Cmp(q) != 0 {
			break
		}
	}

	pair, err := derive(p, q, exponent)
	if err != nil {
		return nil, err.Wrap("failed to derive key pair")
	}

	return pair, nil
}

// derive assembles a key pair from two distinct primes. The e search and the
// ModInverse nil check are the only failure points; both map to
// CodeKeyGeneration.
func derive(p, q *big.Int, exponent int) (*KeyPair, yaerrors.Error) {
	n := new(big.Int).Mul(p, q)

	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, bigOne),
		new(big.Int).Sub(q, bigOne),
	)

	e, err := selectExponent(phi, exponent)
	if err != nil {
		return nil, err.Wrap("failed to select public exponent")
	}

	// gcd(e, phi) = 1 holds by construction here, so the inverse exists;
	// the nil check still guards the arithmetic instead of trusting it.
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeKeyGeneration,
			ErrNoModularInverse,
			fmt.Sprintf("derive key pair: e = %s", e),
		)
	}

	return &KeyPair{N: n, E: e, D: d}, nil
}

// selectExponent returns the first odd integer >= start (dropped to
// smallExponent when start does not fit below phi) that is co-prime to phi.
// The walk is bounded; exceeding the bound is a CodeKeyGeneration failure.
func selectExponent(phi *big.Int, start int) (*big.Int, yaerrors.Error) {
	e := big.NewInt(int64(start))

	// e = 1 would make encryption the identity; anything below
	// smallExponent snaps up, as does a start that cannot fit below phi.
	if e.Cmp(phi) >= 0 || start < smallExponent {
		e.SetInt64(smallExponent)
	}

	if e.Bit(0) == 0 {
		e.Add(e, bigOne)
	}

	gcd := new(big.Int)

	for range exponentSearchLimit {
		if e.Cmp(phi) >= 0 {
			break
		}

		if gcd.GCD(nil, nil, e, phi).Cmp(bigOne) == 0 {
			return e, nil
		}

		e.Add(e, big.NewInt(2))
	}

	return nil, yaerrors.FromError(
		yaerrors.CodeKeyGeneration,
		ErrNoPublicExponent,
		fmt.Sprintf("select exponent: started at %d", start),
	)
}
