// Package yacipher applies RSA modular exponentiation to message blocks and
// composes the codec with the block operations into the message-level
// Encrypt/Decrypt entry points.
//
// Per block b the transform is b^exp mod n via big.Int.Exp, which uses
// exponentiation by squaring, so the cost is O(log exp) big-integer
// multiplications. Encrypting uses the public exponent, decrypting the
// private one; the identity decrypt(encrypt(b)) = b holds for every b < n
// whenever both exponents come from the same yarsa.GenerateKeyPair call.
//
// Decrypting with a mismatched key is well defined and silently yields
// garbage blocks; the mismatch is surfaced by the codec when the garbage
// fails to frame or decode as text. That is deliberate: modular
// exponentiation has no way to notice the wrong exponent.
package yacipher

import (
	"fmt"
	"math/big"

	"github.com/YaCodeDev/GoYaRSA/yacodec"
	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yarsa"
)

// Ciphertext is an ordered sequence of encrypted blocks, each in [0, n).
type Ciphertext []*big.Int

// EncryptBlocks raises each plaintext block to the key exponent modulo the
// key modulus. Every block must already be strictly below the modulus;
// a block at or above it would not survive the modular reduction, so it is
// rejected as CodeInvalidInput instead of corrupted.
func EncryptBlocks(blocks []*big.Int, public yarsa.Key) (Ciphertext, yaerrors.Error) {
	if err := public.Validate(); err != nil {
		return nil, err.Wrap("encrypt blocks")
	}

	out := make(Ciphertext, 0, len(blocks))

	for i, block := range blocks {
		if block == nil {
			return nil, yaerrors.FromError(
				yaerrors.CodeInvalidInput,
				ErrNilBlock,
				fmt.Sprintf("encrypt blocks: block %d", i),
			)
		}

		if block.Sign() < 0 || block.Cmp(public.N) >= 0 {
			return nil, yaerrors.FromError(
				yaerrors.CodeInvalidInput,
				ErrBlockNotBelowModulus,
				fmt.Sprintf("encrypt blocks: block %d", i),
			)
		}

		out = append(out, new(big.Int).Exp(block, public.Exp, public.N))
	}

	return out, nil
}

// DecryptBlocks raises each ciphertext block to the key exponent modulo the
// key modulus. Unlike encryption it accepts any non-negative block value:
// exponentiation reduces modulo n regardless, and a foreign ciphertext must
// flow through so the codec can flag it.
func DecryptBlocks(ciphertext Ciphertext, private yarsa.Key) ([]*big.Int, yaerrors.Error) {
	if err := private.Validate(); err != nil {
		return nil, err.Wrap("decrypt blocks")
	}

	out := make([]*big.Int, 0, len(ciphertext))

	for i, block := range ciphertext {
		if block == nil || block.Sign() < 0 {
			return nil, yaerrors.FromError(
				yaerrors.CodeInvalidInput,
				ErrNilBlock,
				fmt.Sprintf("decrypt blocks: block %d", i),
			)
		}

		out = append(out, new(big.Int).Exp(block, private.Exp, private.N))
	}

	return out, nil
}

// Encrypt encodes a text message into blocks bounded by the public key
// modulus and encrypts each block.
//
// Example usage:
//
//	ciphertext, err := yacipher.Encrypt("HI", pair.Public())
//	if err != nil {
//	    log.Fatalf("failed to encrypt: %v", err)
//	}
func Encrypt(message string, public yarsa.Key) (Ciphertext, yaerrors.Error) {
	blocks, err := yacodec.Encode(message, public.N)
	if err != nil {
		return nil, err.Wrap("encrypt message")
	}

	ciphertext, err := EncryptBlocks(blocks, public)
	if err != nil {
		return nil, err.Wrap("encrypt message")
	}

	return ciphertext, nil
}

// Decrypt decrypts each block with the private key and decodes the result
// back into text. A ciphertext produced under a different key pair comes out
// of the block stage as garbage and is reported by the codec as a
// CodeDecoding failure, never as a successful decode of garbage bytes.
//
// Example usage:
//
//	message, err := yacipher.Decrypt(ciphertext, pair.Private())
//	if yaerrors.HasCode(err, yaerrors.CodeDecoding) {
//	    // wrong key pair, most likely
//	}
func Decrypt(ciphertext Ciphertext, private yarsa.Key) (string, yaerrors.Error) {
	blocks, err := DecryptBlocks(ciphertext, private)
	if err != nil {
		return "", err.Wrap("decrypt message")
	}

	message, err := yacodec.Decode(blocks, private.N)
	if err != nil {
		return "", err.Wrap("decrypt message")
	}

	return message, nil
}
