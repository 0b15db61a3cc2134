package yaprime_test

import (
	"io"
	"testing"

	"github.com/YaCodeDev/GoYaRSA/yaprime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicReader(t *testing.T) {
	t.Parallel()

	t.Run("[Reader] SameSeedSameStream", func(t *testing.T) {
		t.Parallel()

		first := make([]byte, 96)
		second := make([]byte, 96)

		_, err := io.ReadFull(yaprime.NewDeterministicReader([]byte("seed")), first)
		require.NoError(t, err)

		_, err = io.ReadFull(yaprime.NewDeterministicReader([]byte("seed")), second)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("[Reader] DifferentSeedsDiverge", func(t *testing.T) {
		t.Parallel()

		first := make([]byte, 64)
		second := make([]byte, 64)

		_, err := io.ReadFull(yaprime.NewDeterministicReader([]byte("seed-a")), first)
		require.NoError(t, err)

		_, err = io.ReadFull(yaprime.NewDeterministicReader([]byte("seed-b")), second)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("[Reader] ChunkedReadsMatchOneShot", func(t *testing.T) {
		t.Parallel()

		oneShot := make([]byte, 100)

		_, err := io.ReadFull(yaprime.NewDeterministicReader([]byte("seed")), oneShot)
		require.NoError(t, err)

		chunked := make([]byte, 0, 100)
		reader := yaprime.NewDeterministicReader([]byte("seed"))

		for _, size := range []int{1, 7, 32, 60} {
			buf := make([]byte, size)

			_, err = io.ReadFull(reader, buf)
			require.NoError(t, err)

			chunked = append(chunked, buf...)
		}

		assert.Equal(t, oneShot, chunked)
	})

	t.Run("[Reader] SeedCopyIsolatesCallerMutation", func(t *testing.T) {
		t.Parallel()

		seed := []byte("mutable seed")
		reader := yaprime.NewDeterministicReader(seed)
		seed[0] = 'X'

		expected := make([]byte, 32)
		actual := make([]byte, 32)

		_, err := io.ReadFull(yaprime.NewDeterministicReader([]byte("mutable seed")), expected)
		require.NoError(t, err)

		_, err = io.ReadFull(reader, actual)
		require.NoError(t, err)

		assert.Equal(t, expected, actual)
	})
}
