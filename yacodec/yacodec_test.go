package yacodec_test

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/YaCodeDev/GoYaRSA/yacodec"
	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModulus returns the Mersenne prime 2^61-1: 61 bits, so the chunk width
// under it is 7 bytes. Any modulus works for the codec; primality is
// irrelevant here.
func testModulus(t *testing.T) *big.Int {
	t.Helper()

	n, ok := new(big.Int).SetString("2305843009213693951", 10)
	require.True(t, ok)

	return n
}

func TestChunkWidth(t *testing.T) {
	t.Parallel()

	t.Run("[Width] StaysOneBitShortOfModulus", func(t *testing.T) {
		t.Parallel()

		cases := map[int]int{
			9:   1,
			16:  1,
			17:  2,
			61:  7,
			512: 63,
		}

		for bits, want := range cases {
			n := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))

			got, err := yacodec.ChunkWidth(n)
			require.Nilf(t, err, "bits=%d", bits)

			assert.Equalf(t, want, got, "bits=%d", bits)
		}
	})

	t.Run("[Width] RejectsTinyModulus", func(t *testing.T) {
		t.Parallel()

		for _, n := range []*big.Int{nil, big.NewInt(0), big.NewInt(255)} {
			_, err := yacodec.ChunkWidth(n)
			require.NotNil(t, err)

			assert.Equal(t, yaerrors.CodeInvalidInput, err.Code())
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	t.Run("[RoundTrip] Messages", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		messages := []string{
			"",
			"a",
			"HI",
			"Hello, YaCode!",
			"null \x00 byte \x00 inside",
			"многобайтовый текст с 👋 emoji",
			strings.Repeat("padding boundary ", 3),
			strings.Repeat("x", 10000),
		}

		for i, message := range messages {
			t.Run(fmt.Sprintf("case#%d_len=%d", i, len(message)), func(t *testing.T) {
				t.Parallel()

				blocks, err := yacodec.Encode(message, n)
				require.Nil(t, err, "encode failed")

				for _, block := range blocks {
					require.True(t, block.Cmp(n) < 0, "block must stay below the modulus")
					require.True(t, block.Sign() >= 0)
				}

				decoded, err := yacodec.Decode(blocks, n)
				require.Nil(t, err, "decode failed")

				if diff := cmp.Diff(message, decoded); diff != "" {
					t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("[RoundTrip] MultiByteRuneSplitAcrossChunks", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		// Chunk width is 7 and the header eats 4 bytes, so the first
		// 4-byte rune straddles the first chunk boundary.
		message := "👋👋👋"

		blocks, err := yacodec.Encode(message, n)
		require.Nil(t, err)

		decoded, err := yacodec.Decode(blocks, n)
		require.Nil(t, err)

		assert.Equal(t, message, decoded)
	})

	t.Run("[Boundary] BlockCountTracksFrameSize", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		// Width 7, header 4: 3 payload bytes fill exactly one block,
		// a fourth byte forces a second block with padding.
		exactlyOne, err := yacodec.Encode("abc", n)
		require.Nil(t, err)
		assert.Len(t, exactlyOne, 1)

		two, err := yacodec.Encode("abcd", n)
		require.Nil(t, err)
		assert.Len(t, two, 2)

		decoded, err := yacodec.Decode(two, n)
		require.Nil(t, err)
		assert.Equal(t, "abcd", decoded)
	})

	t.Run("[Empty] EmptyMessageIsEmptySequence", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		blocks, err := yacodec.Encode("", n)
		require.Nil(t, err)
		assert.Empty(t, blocks)

		decoded, err := yacodec.Decode([]*big.Int{}, n)
		require.Nil(t, err)
		assert.Equal(t, "", decoded)
	})

	t.Run("[Encode] RejectsInvalidUTF8", func(t *testing.T) {
		t.Parallel()

		_, err := yacodec.Encode(string([]byte{0xff, 0xfe}), testModulus(t))
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeInvalidInput, err.Code())
	})
}

func TestDecodeFlagsGarbage(t *testing.T) {
	t.Parallel()

	t.Run("[Garbage] BlockAboveChunkRange", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		// 2^56 needs 8 bytes, one more than the chunk width carries.
		oversized := new(big.Int).Lsh(big.NewInt(1), 56)

		_, err := yacodec.Decode([]*big.Int{oversized}, n)
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeDecoding, err.Code())
	})

	t.Run("[Garbage] HeaderPointsOutsideStream", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		// A single block whose header claims a huge payload.
		huge := new(big.Int).SetBytes([]byte{0xff, 0xff, 0xff, 0xff, 'h', 'i', '!'})

		_, err := yacodec.Decode([]*big.Int{huge}, n)
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeDecoding, err.Code())
	})

	t.Run("[Garbage] ZeroLengthHeader", func(t *testing.T) {
		t.Parallel()

		_, err := yacodec.Decode([]*big.Int{big.NewInt(0)}, testModulus(t))
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeDecoding, err.Code())
	})

	t.Run("[Garbage] NonZeroPadding", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		// Header says one payload byte; the two trailing bytes must be
		// zero padding but are not.
		tampered := new(big.Int).SetBytes([]byte{0x00, 0x00, 0x00, 0x01, 'a', 0x01, 0x00})

		_, err := yacodec.Decode([]*big.Int{tampered}, n)
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeDecoding, err.Code())
	})

	t.Run("[Garbage] InvalidUTF8Payload", func(t *testing.T) {
		t.Parallel()

		n := testModulus(t)

		invalid := new(big.Int).SetBytes([]byte{0x00, 0x00, 0x00, 0x03, 0xff, 0xfe, 0xfd})

		_, err := yacodec.Decode([]*big.Int{invalid}, n)
		require.NotNil(t, err)

		assert.Equal(t, yaerrors.CodeDecoding, err.Code())
	})
}
