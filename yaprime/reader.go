package yaprime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
)

// DeterministicReader is a deterministic byte stream (DRBG-like) backed by
// HMAC-SHA256(counter). For a fixed seed, it produces the same sequence of
// bytes on every run, which makes prime and key generation reproducible:
// feed it to GenerateOpts.Rand (or yarsa.KeyOpts.Rand) and the same seed
// yields the same primes.
//
// Security note:
//   - This exists for reproducible tests and demos. A guessable seed
//     trivially reveals every prime drawn from it, so never use it on a
//     production path; the production source is crypto/rand.Reader.
//   - It is not concurrency-safe; use one instance per goroutine if needed.
//
// Usage:
//
//	r := yaprime.NewDeterministicReader([]byte("fixed test seed"))
//
//	p1, _ := yaprime.GeneratePrime(64, &yaprime.GenerateOpts{Rand: r})
//
//	r2 := yaprime.NewDeterministicReader([]byte("fixed test seed"))
//	p2, _ := yaprime.GeneratePrime(64, &yaprime.GenerateOpts{Rand: r2})
//
//	fmt.Println(p1.Cmp(p2) == 0) // true
type DeterministicReader struct {
	seed    []byte
	counter uint64
	buf     [sha256.Size]byte
	pos     int
}

// NewDeterministicReader constructs a new deterministic reader from seed.
// The seed slice is copied internally to avoid external mutation effects.
// For the same seed, the produced byte stream is identical across runs.
func NewDeterministicReader(seed []byte) *DeterministicReader {
	return &DeterministicReader{
		seed:    append([]byte{}, seed...),
		counter: 0,
		pos:     sha256.Size,
	}
}

// Read fills p with deterministic bytes, refilling the internal 32-byte block
// as needed. It always returns len(p), nil.
func (r *DeterministicReader) Read(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		if r.pos >= len(r.buf) {
			r.refill()
		}

		copied := copy(p[written:], r.buf[r.pos:])

		r.pos += copied
		written += copied
	}

	return written, nil
}

// refill computes the next block = HMAC-SHA256(seed, bigEndian(counter)),
// resets the buffer position, then increments the counter.
func (r *DeterministicReader) refill() {
	mac := hmac.New(sha256.New, r.seed)

	var ctrBytes [8]byte
	binary.BigEndian.PutUint64(ctrBytes[:], r.counter)
	mac.Write(ctrBytes[:])

	copy(r.buf[:], mac.Sum(nil))

	r.pos = 0

	r.counter++
}
