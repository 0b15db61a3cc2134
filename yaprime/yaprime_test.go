package yaprime_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yaprime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isPrimeByTrialDivision is the exact ground truth for small n.
func isPrimeByTrialDivision(n int) bool {
	if n < 2 {
		return false
	}

	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}

	return true
}

func TestIsProbablePrime(t *testing.T) {
	t.Parallel()

	t.Run("[Oracle] MatchesTrialDivisionDenseRange", func(t *testing.T) {
		t.Parallel()

		const limit = 20000

		for n := 0; n <= limit; n++ {
			got := yaprime.IsProbablePrime(big.NewInt(int64(n)), 10)
			want := isPrimeByTrialDivision(n)

			require.Equalf(t, want, got, "disagreement at n=%d", n)
		}
	})

	t.Run("[Oracle] RejectsCarmichaelNumbers", func(t *testing.T) {
		t.Parallel()

		// Fermat liars to every co-prime base; Miller-Rabin must still
		// reject them.
		carmichael := []int64{561, 1105, 1729, 2465, 2821, 6601, 8911, 41041, 825265}

		for _, n := range carmichael {
			assert.Falsef(t, yaprime.IsProbablePrime(big.NewInt(n), 20), "n=%d", n)
		}
	})

	t.Run("[Oracle] AcceptsLargeKnownPrimes", func(t *testing.T) {
		t.Parallel()

		known := []string{
			// Mersenne primes 2^61-1 and 2^127-1.
			"2305843009213693951",
			"170141183460469231731687303715884105727",
		}

		for _, text := range known {
			n, ok := new(big.Int).SetString(text, 10)
			require.True(t, ok)

			assert.Truef(t, yaprime.IsProbablePrime(n, 20), "n=%s", text)
		}
	})

	t.Run("[Oracle] RejectsLargeComposites", func(t *testing.T) {
		t.Parallel()

		// (2^61-1)^2 and a 128-bit even number.
		m61, ok := new(big.Int).SetString("2305843009213693951", 10)
		require.True(t, ok)

		square := new(big.Int).Mul(m61, m61)
		assert.False(t, yaprime.IsProbablePrime(square, 20))

		even := new(big.Int).Lsh(big.NewInt(1), 128)
		assert.False(t, yaprime.IsProbablePrime(even, 20))
	})

	t.Run("[Oracle] EdgeInputs", func(t *testing.T) {
		t.Parallel()

		assert.False(t, yaprime.IsProbablePrime(nil, 10))
		assert.False(t, yaprime.IsProbablePrime(big.NewInt(-7), 10))
		assert.False(t, yaprime.IsProbablePrime(big.NewInt(0), 10))
		assert.False(t, yaprime.IsProbablePrime(big.NewInt(1), 10))
		assert.True(t, yaprime.IsProbablePrime(big.NewInt(2), 10))
		assert.True(t, yaprime.IsProbablePrime(big.NewInt(3), 10))
		assert.False(t, yaprime.IsProbablePrime(big.NewInt(4), 10))
	})

	t.Run("[Oracle] RoundsBelowOneFallBack", func(t *testing.T) {
		t.Parallel()

		assert.True(t, yaprime.IsProbablePrime(big.NewInt(97), 0))
		assert.False(t, yaprime.IsProbablePrime(big.NewInt(95), -3))
	})
}

func TestGeneratePrime(t *testing.T) {
	t.Parallel()

	t.Run("[Generator] ExactBitLengthOddAndPrime", func(t *testing.T) {
		t.Parallel()

		for _, bits := range []int{8, 16, 32, 64, 128} {
			t.Run(fmt.Sprintf("bits=%d", bits), func(t *testing.T) {
				t.Parallel()

				p, err := yaprime.GeneratePrime(bits, nil)
				require.Nil(t, err, "generate prime failed")

				assert.Equal(t, bits, p.BitLen(), "bit length must be exact")
				assert.Equal(t, uint(1), p.Bit(0), "prime must be odd")
				assert.True(t, yaprime.IsProbablePrime(p, 40),
					"generated prime must survive a high-confidence recheck")
			})
		}
	})

	t.Run("[Generator] DeterministicWithSeededReader", func(t *testing.T) {
		t.Parallel()

		seed := []byte("fixed test seed")

		first, err := yaprime.GeneratePrime(64, &yaprime.GenerateOpts{
			Rand: yaprime.NewDeterministicReader(seed),
		})
		require.Nil(t, err)

		second, err := yaprime.GeneratePrime(64, &yaprime.GenerateOpts{
			Rand: yaprime.NewDeterministicReader(seed),
		})
		require.Nil(t, err)

		assert.Zero(t, first.Cmp(second), "same seed must yield the same prime")
	})

	t.Run("[Generator] RejectsTinyBitLength", func(t *testing.T) {
		t.Parallel()

		_, err := yaprime.GeneratePrime(yaprime.MinBits-1, nil)
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeInvalidInput, err.Code())
	})
}
