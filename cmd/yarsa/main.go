// Command yarsa is the interactive menu around the GoYaRSA core: generate a
// key pair, encrypt and decrypt messages with it, try foreign keys to see the
// mismatch surface as a decoding failure, check primality, and persist pairs
// in a SQLite keystore.
//
// Configuration comes from the environment:
//
//	YARSA_BITS      default key size in bits (default 512)
//	YARSA_ROUNDS    Miller-Rabin rounds for the primality menu (default 5)
//	YARSA_KEYSTORE  SQLite path for saved pairs (default yarsa-keys.db)
//	YARSA_LOG_LEVEL logger level (default info)
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/YaCodeDev/GoYaRSA/config"
	"github.com/YaCodeDev/GoYaRSA/yacipher"
	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yakeystore"
	"github.com/YaCodeDev/GoYaRSA/yalogger"
	"github.com/YaCodeDev/GoYaRSA/yaprime"
	"github.com/YaCodeDev/GoYaRSA/yarsa"
)

const (
	defaultBits     = yarsa.RecommendedKeyBits
	defaultRounds   = yaprime.DefaultRounds
	defaultKeystore = "yarsa-keys.db"
)

// session holds the state of one interactive run: the current key pair and
// the lazily opened keystore. No globals; the menu passes the session around
// explicitly.
type session struct {
	pair     *yarsa.KeyPair
	store    yakeystore.IKeyStore
	storeDSN string
	bits     int
	rounds   int
	in       *bufio.Scanner
	log      yalogger.Logger
}

func main() {
	bootstrap := yalogger.NewBaseLogger(nil).NewLogger()

	var level yalogger.Level
	if err := level.Unmarshal(config.GetEnv("YARSA_LOG_LEVEL", "info", false, bootstrap)); err != nil {
		level = yalogger.InfoLevel
	}

	log := yalogger.NewBaseLogger(&yalogger.Config{
		BaseLoggerType:   yalogger.Logrus,
		Level:            level,
		DisableTimestamp: true,
	}).NewLogger().WithRandomSessionID()

	s := &session{
		storeDSN: config.GetEnv("YARSA_KEYSTORE", defaultKeystore, false, log),
		bits:     config.GetEnv("YARSA_BITS", defaultBits, false, log),
		rounds:   config.GetEnv("YARSA_ROUNDS", defaultRounds, false, log),
		in:       bufio.NewScanner(os.Stdin),
		log:      log,
	}

	if s.bits < yarsa.RecommendedKeyBits {
		log.Warnf("Key size %d is below the recommended %d bits", s.bits, yarsa.RecommendedKeyBits)
	}

	s.run()
}

func (s *session) run() {
	for {
		fmt.Println()
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println(" GoYaRSA interactive menu")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. Generate new key pair")
		fmt.Println("2. Encrypt message (current keys)")
		fmt.Println("3. Decrypt ciphertext (current keys)")
		fmt.Println("4. Decrypt ciphertext with foreign keys")
		fmt.Println("5. Show current keys")
		fmt.Println("6. Primality check")
		fmt.Println("7. Save current pair to keystore")
		fmt.Println("8. Load pair from keystore")
		fmt.Println("9. List stored pairs")
		fmt.Println("0. Quit")

		switch s.prompt("Select an option (0-9): ") {
		case "1":
			s.generate()
		case "2":
			s.encrypt()
		case "3":
			s.decrypt()
		case "4":
			s.decryptForeign()
		case "5":
			s.showKeys()
		case "6":
			s.primality()
		case "7":
			s.savePair()
		case "8":
			s.loadPair()
		case "9":
			s.listPairs()
		case "0", "q", "quit":
			fmt.Println("Bye!")

			return
		default:
			fmt.Println("[!] Invalid option")
		}
	}
}

func (s *session) prompt(label string) string {
	fmt.Print(label)

	if !s.in.Scan() {
		return "0"
	}

	return strings.TrimSpace(s.in.Text())
}

func (s *session) generate() {
	bits := s.bits
	if raw := s.prompt(fmt.Sprintf("Key size in bits [%d]: ", s.bits)); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &bits); err != nil {
			fmt.Println("[!] Not a number")

			return
		}
	}

	pair, err := yarsa.GenerateKeyPair(bits, nil)
	if err != nil {
		s.log.Errorf("Key generation failed: %v", err)

		return
	}

	s.pair = pair
	s.log.WithField("bits", pair.Bits()).Info("Key pair generated")
	s.showKeys()
}

func (s *session) encrypt() {
	if s.pair == nil {
		fmt.Println("[!] Generate or load keys first (option 1 or 8)")

		return
	}

	message := s.prompt("Message to encrypt: ")

	ciphertext, err := yacipher.Encrypt(message, s.pair.Public())
	if err != nil {
		s.log.Errorf("Encryption failed: %v", err)

		return
	}

	wire, err := ciphertext.MarshalEnvelope()
	if err != nil {
		s.log.Errorf("Failed to serialize ciphertext: %v", err)

		return
	}

	fmt.Println("\n[ok] Ciphertext envelope:")
	fmt.Println(wire)
}

func (s *session) decrypt() {
	if s.pair == nil {
		fmt.Println("[!] Generate or load keys first (option 1 or 8)")

		return
	}

	s.decryptWith(s.pair.Private())
}

// decryptForeign asks for a different private key and shows how a mismatched
// pair is reported as a decoding failure instead of silently wrong text.
func (s *session) decryptForeign() {
	fmt.Println("Enter the foreign private key record (modulus hex, exponent hex):")

	nHex := s.prompt("n (hex): ")
	dHex := s.prompt("d (hex): ")

	key, err := yarsa.ParseKeyRecord(nHex + "\n" + dHex + "\n")
	if err != nil {
		s.log.Errorf("Bad key record: %v", err)

		return
	}

	s.decryptWith(key)
}

func (s *session) decryptWith(private yarsa.Key) {
	wire := s.prompt("Ciphertext envelope: ")

	ciphertext, err := yacipher.ParseEnvelope(wire)
	if err != nil {
		s.log.Errorf("Bad ciphertext envelope: %v", err)

		return
	}

	message, err := yacipher.Decrypt(ciphertext, private)
	if err != nil {
		if yaerrors.HasCode(err, yaerrors.CodeDecoding) {
			fmt.Println("\n[x] Decryption produced unreadable output.")
			fmt.Println("Most likely the ciphertext was produced under a different key pair.")
		}

		s.log.Errorf("Decryption failed: %v", err)

		return
	}

	fmt.Println("\n[ok] Decrypted message:")
	fmt.Println(message)
}

func (s *session) showKeys() {
	if s.pair == nil {
		fmt.Println("[!] No keys in this session")

		return
	}

	fmt.Printf("\nPublic key (n, e), %d bits:\n", s.pair.Bits())
	fmt.Print(s.pair.Public().MarshalRecord())
	fmt.Println("\nPrivate key (n, d):")
	fmt.Print(s.pair.Private().MarshalRecord())
}

func (s *session) primality() {
	raw := s.prompt("Number to test (decimal): ")

	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		fmt.Println("[!] Not a decimal number")

		return
	}

	if yaprime.IsProbablePrime(n, s.rounds) {
		fmt.Printf("\n[ok] %s is probably prime (error <= 4^-%d)\n", n, s.rounds)
	} else {
		fmt.Printf("\n[x] %s is composite\n", n)
	}
}

func (s *session) keystore() yakeystore.IKeyStore {
	if s.store != nil {
		return s.store
	}

	store, err := yakeystore.OpenSQLite(s.storeDSN)
	if err != nil {
		s.log.Errorf("Failed to open keystore: %v", err)

		return nil
	}

	s.store = store

	return store
}

func (s *session) savePair() {
	if s.pair == nil {
		fmt.Println("[!] No keys to save")

		return
	}

	store := s.keystore()
	if store == nil {
		return
	}

	name := s.prompt("Name for this pair: ")
	if name == "" {
		fmt.Println("[!] Name must not be empty")

		return
	}

	pairID, err := store.SaveKeyPair(context.Background(), name, s.pair)
	if err != nil {
		s.log.Errorf("Failed to save pair: %v", err)

		return
	}

	s.log.WithField("pair_id", pairID.String()).Infof("Saved pair %q", name)
}

func (s *session) loadPair() {
	store := s.keystore()
	if store == nil {
		return
	}

	name := s.prompt("Name of the pair to load: ")

	pair, err := store.FetchKeyPair(context.Background(), name)
	if err != nil {
		s.log.Errorf("Failed to load pair: %v", err)

		return
	}

	s.pair = pair
	s.log.WithField("bits", pair.Bits()).Infof("Loaded pair %q", name)
}

func (s *session) listPairs() {
	store := s.keystore()
	if store == nil {
		return
	}

	names, err := store.ListNames(context.Background())
	if err != nil {
		s.log.Errorf("Failed to list pairs: %v", err)

		return
	}

	if len(names) == 0 {
		fmt.Println("[!] Keystore is empty")

		return
	}

	for _, name := range names {
		fmt.Println(" -", name)
	}
}
