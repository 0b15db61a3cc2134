package yarsa

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

// Key record format: two lowercase-hex fields, modulus then exponent,
// newline-separated. Public and private keys serialize identically and are
// stored as separate records, so a leaked record never carries both
// exponents.

const recordFields = 2

// MarshalRecord serializes the key as a two-line hex record.
//
// Example usage:
//
//	record := pair.Public().MarshalRecord()
//	fmt.Print(record)
//	// c9a1...\n
//	// 10001\n
func (k Key) MarshalRecord() string {
	return fmt.Sprintf("%x\n%x\n", k.N, k.Exp)
}

// ParseKeyRecord parses a two-line hex key record produced by MarshalRecord.
// Whitespace around the fields is tolerated; anything else is a
// CodeInvalidInput failure.
//
// Example usage:
//
//	key, err := yarsa.ParseKeyRecord(record)
//	if err != nil {
//	    log.Fatalf("failed to parse key record: %v", err)
//	}
func ParseKeyRecord(record string) (Key, yaerrors.Error) {
	fields := strings.Fields(record)
	if len(fields) != recordFields {
		return Key{}, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMalformedKeyRecord,
			fmt.Sprintf("parse key record: %d fields, want %d", len(fields), recordFields),
		)
	}

	n, ok := new(big.Int).SetString(fields[0], 16)
	if !ok {
		return Key{}, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMalformedKeyRecord,
			"parse key record: modulus is not hex",
		)
	}

	exp, ok := new(big.Int).SetString(fields[1], 16)
	if !ok {
		return Key{}, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMalformedKeyRecord,
			"parse key record: exponent is not hex",
		)
	}

	key := Key{N: n, Exp: exp}
	if err := key.Validate(); err != nil {
		return Key{}, err.Wrap("parse key record")
	}

	return key, nil
}

// Validate checks the numeric invariants a usable key must satisfy:
// modulus above one, exponent above one and below the modulus.
func (k Key) Validate() yaerrors.Error {
	if k.N == nil || k.Exp == nil {
		return yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMalformedKeyRecord,
			"validate key: nil component",
		)
	}

	if k.N.Cmp(bigOne) <= 0 {
		return yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMalformedKeyRecord,
			"validate key: modulus must exceed one",
		)
	}

	if k.Exp.Cmp(bigOne) <= 0 || k.Exp.Cmp(k.N) >= 0 {
		return yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrMalformedKeyRecord,
			"validate key: exponent out of range (1, modulus)",
		)
	}

	return nil
}
