// Package yaprime implements the probabilistic primality layer of GoYaRSA:
// a Miller-Rabin oracle and a random prime generator at an exact bit length.
//
// The oracle is probabilistic. A composite slips through a single round with
// probability at most 1/4, so `rounds` trades speed for confidence. The
// defaults here are fine for an educational system and NOT for production
// key material.
package yaprime

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

const (
	// DefaultRounds is the oracle confidence used when the caller passes
	// rounds < 1. Error probability is at most 4^-5, about 0.1%.
	DefaultRounds = 5

	// GenerationRounds is the default confidence for generated primes.
	// Higher than ad-hoc checks, since the result becomes a long-lived
	// key component.
	GenerationRounds = 20

	// MinBits is the smallest bit length GeneratePrime accepts.
	MinBits = 8
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// GenerateOpts holds optional knobs for GeneratePrime.
//   - Rounds: Miller-Rabin rounds per candidate (GenerationRounds if <= 0).
//   - Rand: candidate byte source (crypto/rand.Reader if nil). Supply a
//     DeterministicReader for reproducible primes in tests and demos.
type GenerateOpts struct {
	Rounds int
	Rand   io.Reader
}

// IsProbablePrime reports whether n is probably prime using the Miller-Rabin
// test with the given number of rounds. rounds < 1 falls back to
// DefaultRounds. It never fails: every input maps to a boolean.
//
// The test decomposes n-1 = 2^s * d with d odd and checks `rounds` random
// witnesses drawn uniformly from [2, n-2]. A composite answer is definitive;
// a prime answer is wrong with probability at most 4^-rounds.
//
// Example usage:
//
//	if yaprime.IsProbablePrime(n, 10) {
//	    // n is prime with error probability <= 4^-10
//	}
func IsProbablePrime(n *big.Int, rounds int) bool {
	if n == nil || n.Cmp(bigTwo) < 0 {
		return false
	}

	if n.Cmp(bigThree) <= 0 {
		return true
	}

	if n.Bit(0) == 0 {
		return false
	}

	if rounds < 1 {
		rounds = DefaultRounds
	}

	nm1 := new(big.Int).Sub(n, bigOne)

	s := nm1.TrailingZeroBits()
	d := new(big.Int).Rsh(nm1, s)

	// Witnesses are uniform in [2, n-2]: 2 + uniform[0, n-3).
	witnessSpan := new(big.Int).Sub(n, bigThree)

	x := new(big.Int)

	for range rounds {
		a, err := rand.Int(rand.Reader, witnessSpan)
		if err != nil {
			// crypto/rand.Reader cannot fail on supported platforms.
			a = new(big.Int).Set(bigTwo)
		}

		a.Add(a, bigTwo)

		x.Exp(a, d, n)

		if x.Cmp(bigOne) == 0 || x.Cmp(nm1) == 0 {
			continue
		}

		passed := false

		for range s - 1 {
			x.Mul(x, x).Mod(x, n)

			if x.Cmp(nm1) == 0 {
				passed = true

				break
			}
		}

		if !passed {
			return false
		}
	}

	return true
}

// GeneratePrime returns a random prime of exactly `bits` bits. Candidates are
// drawn with the top and bottom bits forced to one, which guarantees the bit
// length and oddness, then screened with IsProbablePrime. The search is
// unbounded: candidates are discarded until one passes, so the result is
// never a number the oracle rejected.
//
// A nil opts uses crypto/rand.Reader and GenerationRounds.
//
// Example usage:
//
//	p, err := yaprime.GeneratePrime(512, nil)
//	if err != nil {
//	    log.Fatalf("failed to generate prime: %v", err)
//	}
func GeneratePrime(bits int, opts *GenerateOpts) (*big.Int, yaerrors.Error) {
	if bits < MinBits {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrBitsTooSmall,
			"generate prime",
		)
	}

	rounds := GenerationRounds
	source := io.Reader(rand.Reader)

	if opts != nil {
		if opts.Rounds > 0 {
			rounds = opts.Rounds
		}

		if opts.Rand != nil {
			source = opts.Rand
		}
	}

	const byteBits = 8

	byteLen := (bits + byteBits - 1) / byteBits
	buf := make([]byte, byteLen)

	for {
		if _, err := io.ReadFull(source, buf); err != nil {
			return nil, yaerrors.FromError(
				yaerrors.CodeInternal,
				err,
				"failed to draw prime candidate",
			)
		}

		const mask = 0xFF

		topMask := byte(mask)
		if m := bits % byteBits; m != 0 {
			topMask = mask >> (byteBits - m)
		}

		buf[0] &= topMask

		msb := uint((bits - 1) % byteBits)
		buf[0] |= 1 << msb

		buf[len(buf)-1] |= 1

		candidate := new(big.Int).SetBytes(buf)
		if candidate.BitLen() != bits {
			continue
		}

		if IsProbablePrime(candidate, rounds) {
			return candidate, nil
		}
	}
}
