package yarsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// White-box checks of the derivation arithmetic against hand-computable
// values, so the keypair invariants are verified with phi in hand rather
// than inferred from round-trips.

func TestDerive(t *testing.T) {
	t.Parallel()

	t.Run("[Derive] TextbookPrimes61And53", func(t *testing.T) {
		t.Parallel()

		// n = 3233, phi = 3120, e = 17 -> d = 2753.
		pair, err := derive(big.NewInt(61), big.NewInt(53), 17)
		require.Nil(t, err)

		assert.Equal(t, int64(3233), pair.N.Int64())
		assert.Equal(t, int64(17), pair.E.Int64())
		assert.Equal(t, int64(2753), pair.D.Int64())
	})

	t.Run("[Derive] ExponentInvariantsHold", func(t *testing.T) {
		t.Parallel()

		p := big.NewInt(1009)
		q := big.NewInt(2003)

		pair, err := derive(p, q, DefaultExponent)
		require.Nil(t, err)

		phi := new(big.Int).Mul(
			new(big.Int).Sub(p, bigOne),
			new(big.Int).Sub(q, bigOne),
		)

		gcd := new(big.Int).GCD(nil, nil, pair.E, phi)
		assert.Zero(t, gcd.Cmp(bigOne), "gcd(e, phi) must be 1")

		ed := new(big.Int).Mul(pair.E, pair.D)
		ed.Mod(ed, phi)
		assert.Zero(t, ed.Cmp(bigOne), "e*d mod phi must be 1")
	})

	t.Run("[Derive] SearchSkipsNonCoprimeExponents", func(t *testing.T) {
		t.Parallel()

		// p=7, q=13: phi = 72 = 2^3 * 3^2. Starting at 3 must land on 5.
		pair, err := derive(big.NewInt(7), big.NewInt(13), 3)
		require.Nil(t, err)

		assert.Equal(t, int64(5), pair.E.Int64())
	})

	t.Run("[Derive] OversizedStartDropsToSmallExponent", func(t *testing.T) {
		t.Parallel()

		// phi = 6*10 = 60 < 65537, so the conventional start cannot fit.
		pair, err := derive(big.NewInt(7), big.NewInt(11), DefaultExponent)
		require.Nil(t, err)

		assert.True(t, pair.E.Cmp(pair.N) < 0)

		phi := big.NewInt(60)
		gcd := new(big.Int).GCD(nil, nil, pair.E, phi)
		assert.Zero(t, gcd.Cmp(bigOne))
	})
}

func TestSelectExponent(t *testing.T) {
	t.Parallel()

	t.Run("[Exponent] EvenStartIsNudgedOdd", func(t *testing.T) {
		t.Parallel()

		e, err := selectExponent(big.NewInt(35), 4)
		require.Nil(t, err)

		assert.Equal(t, int64(1), new(big.Int).Mod(e, big.NewInt(2)).Int64())
	})

	t.Run("[Exponent] NoCandidateBelowPhiFails", func(t *testing.T) {
		t.Parallel()

		// phi = 3 leaves no e with 1 < e < phi co-prime and odd except
		// nothing: the only candidate walk starts at 3 == phi.
		_, err := selectExponent(big.NewInt(3), 3)
		require.NotNil(t, err)
	})
}
