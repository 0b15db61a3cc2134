package yacipher

import (
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/vmihailenco/msgpack/v5"
)

// Ciphertext envelope: the block sequence serialized as lowercase-hex strings
// inside a MessagePack document, wrapped in standard base64 so it survives
// text mediums (chat, config files, copy-paste).

type envelope struct {
	Blocks []string `msgpack:"blocks"`
}

// MarshalEnvelope serializes the ciphertext into a base64 MessagePack
// envelope.
//
// Example usage:
//
//	wire, err := ciphertext.MarshalEnvelope()
//	if err != nil {
//	    log.Fatalf("failed to marshal ciphertext: %v", err)
//	}
func (c Ciphertext) MarshalEnvelope() (string, yaerrors.Error) {
	env := envelope{Blocks: make([]string, 0, len(c))}

	for i, block := range c {
		if block == nil {
			return "", yaerrors.FromError(
				yaerrors.CodeInvalidInput,
				ErrNilBlock,
				fmt.Sprintf("marshal envelope: block %d", i),
			)
		}

		env.Blocks = append(env.Blocks, block.Text(16))
	}

	raw, err := msgpack.Marshal(&env)
	if err != nil {
		return "", yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to marshal ciphertext envelope",
		)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// ParseEnvelope reverses MarshalEnvelope. Anything that is not base64, not
// MessagePack, or not hex block strings is a CodeInvalidInput failure.
//
// Example usage:
//
//	ciphertext, err := yacipher.ParseEnvelope(wire)
//	if err != nil {
//	    log.Fatalf("failed to parse ciphertext: %v", err)
//	}
func ParseEnvelope(s string) (Ciphertext, yaerrors.Error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			err,
			"failed to decode ciphertext envelope base64",
		)
	}

	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			err,
			"failed to unmarshal ciphertext envelope",
		)
	}

	out := make(Ciphertext, 0, len(env.Blocks))

	for i, text := range env.Blocks {
		block, ok := new(big.Int).SetString(text, 16)
		if !ok || block.Sign() < 0 {
			return nil, yaerrors.FromError(
				yaerrors.CodeInvalidInput,
				ErrMalformedEnvelope,
				fmt.Sprintf("parse envelope: block %d is not hex", i),
			)
		}

		out = append(out, block)
	}

	return out, nil
}
