// Package yacodec converts text messages to sequences of integer blocks
// bounded by an RSA modulus, and back.
//
// Canonical framing: the UTF-8 bytes of the message are prefixed with a
// 4-byte big-endian length header, zero-padded at the tail to a multiple of
// the chunk width, and split into fixed-width big-endian chunks. The chunk
// width is (bitlen(n)-1)/8 bytes, one bit short of the modulus, so every
// block value is strictly below n and modular reduction can never lose
// information. Decoding writes each block back at exactly the chunk width
// (leading zero bytes preserved), reads the header, strips the padding, and
// validates the result as UTF-8.
//
// A block stream produced under a different modulus almost never survives
// this: the header points outside the stream, or the bytes are not UTF-8.
// Both cases surface as CodeDecoding failures rather than silent garbage.
package yacodec

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

const (
	// headerWidth is the size of the big-endian length prefix.
	headerWidth = 4

	// byteBits is the number of bits per byte in chunk width math.
	byteBits = 8

	// minModulusBits is the smallest modulus bit length that leaves a
	// positive chunk width.
	minModulusBits = byteBits + 1
)

// ChunkWidth returns the payload byte width of one block under modulus n.
// The width stays one bit short of the modulus, which is what guarantees
// block < n for every chunk.
func ChunkWidth(n *big.Int) (int, yaerrors.Error) {
	if n == nil || n.BitLen() < minModulusBits {
		return 0, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrModulusTooSmall,
			fmt.Sprintf("chunk width: need at least %d modulus bits", minModulusBits),
		)
	}

	return (n.BitLen() - 1) / byteBits, nil
}

// Encode maps a text message to an ordered sequence of blocks, each strictly
// below n. The empty message maps to an empty sequence.
//
// Example usage:
//
//	blocks, err := yacodec.Encode("HI", pair.N)
//	if err != nil {
//	    log.Fatalf("failed to encode: %v", err)
//	}
func Encode(message string, n *big.Int) ([]*big.Int, yaerrors.Error) {
	width, err := ChunkWidth(n)
	if err != nil {
		return nil, err.Wrap("encode message")
	}

	if message == "" {
		return []*big.Int{}, nil
	}

	if !utf8.ValidString(message) {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrNotText,
			"encode message",
		)
	}

	payload := []byte(message)
	if uint64(len(payload)) > uint64(^uint32(0)) {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMessageTooLong,
			fmt.Sprintf("encode message: %d bytes", len(payload)),
		)
	}

	framed := make([]byte, headerWidth, headerWidth+len(payload))
	binary.BigEndian.PutUint32(framed, uint32(len(payload)))
	framed = append(framed, payload...)

	if tail := len(framed) % width; tail != 0 {
		framed = append(framed, make([]byte, width-tail)...)
	}

	blocks := make([]*big.Int, 0, len(framed)/width)
	for i := 0; i < len(framed); i += width {
		blocks = append(blocks, new(big.Int).SetBytes(framed[i:i+width]))
	}

	return blocks, nil
}

// Decode is the inverse of Encode: it rebuilds the framed byte stream from
// the blocks, reads the length header, strips the padding, and returns the
// message. An empty sequence yields the empty message.
//
// Any inconsistency — a block at or above the chunk range, a header pointing
// outside the stream, more padding than one chunk can carry, or bytes that
// are not UTF-8 — is a CodeDecoding failure. This is where a ciphertext
// decrypted under the wrong key pair is caught.
func Decode(blocks []*big.Int, n *big.Int) (string, yaerrors.Error) {
	width, err := ChunkWidth(n)
	if err != nil {
		return "", err.Wrap("decode blocks")
	}

	if len(blocks) == 0 {
		return "", nil
	}

	framed := make([]byte, 0, len(blocks)*width)
	chunk := make([]byte, width)

	for i, block := range blocks {
		if block == nil || block.Sign() < 0 || block.BitLen() > width*byteBits {
			return "", yaerrors.FromError(
				yaerrors.CodeDecoding,
				ErrBlockOutOfRange,
				fmt.Sprintf("decode blocks: block %d", i),
			)
		}

		block.FillBytes(chunk)
		framed = append(framed, chunk...)
	}

	if len(framed) < headerWidth {
		return "", yaerrors.FromError(
			yaerrors.CodeDecoding,
			ErrBadFrame,
			"decode blocks: stream shorter than the length header",
		)
	}

	payloadLen := int64(binary.BigEndian.Uint32(framed))
	payloadEnd := headerWidth + payloadLen

	if payloadLen == 0 || payloadEnd > int64(len(framed)) {
		return "", yaerrors.FromError(
			yaerrors.CodeDecoding,
			ErrBadFrame,
			fmt.Sprintf("decode blocks: header claims %d payload bytes, stream has %d",
				payloadLen, len(framed)-headerWidth),
		)
	}

	// Canonical frames pad with less than one full chunk.
	if int64(len(framed))-payloadEnd >= int64(width) {
		return "", yaerrors.FromError(
			yaerrors.CodeDecoding,
			ErrBadFrame,
			"decode blocks: excess padding",
		)
	}

	for _, pad := range framed[payloadEnd:] {
		if pad != 0 {
			return "", yaerrors.FromError(
				yaerrors.CodeDecoding,
				ErrBadFrame,
				"decode blocks: non-zero padding",
			)
		}
	}

	payload := framed[headerWidth:payloadEnd]
	if !utf8.Valid(payload) {
		return "", yaerrors.FromError(
			yaerrors.CodeDecoding,
			ErrNotText,
			"decode blocks: decrypted bytes are not valid UTF-8",
		)
	}

	return string(payload), nil
}
