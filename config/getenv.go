// Package config reads typed configuration values from the environment.
// It is the only configuration surface of GoYaRSA: the library packages take
// explicit parameters, and the interactive binary resolves its defaults
// (key size, primality rounds, keystore path, log level) through GetEnv.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

// ParsableType lists the value types GetEnv can parse.
type ParsableType interface {
	string | int | uint | int64 | uint64 | float64 | bool
}

// GetEnv retrieves the value of an environment variable, parses it to the
// specified type T, and returns it. If the variable is not set, it returns a
// fallback value. If the variable is required and not set, it logs an error
// and exits the program.
//
// Example usage:
//
//	bits := config.GetEnv("YARSA_BITS", 2048, false, log)
//
// PANICS if the environment variable is required and not set.
func GetEnv[T ParsableType](
	key string,
	fallback T,
	required bool,
	log yalogger.Logger,
) T {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := parseValue[T](value); err == nil {
			return parsed
		}
	}

	if required {
		log.Fatalf("Environment variable %s is required", key)
	}

	log.Warnf(
		"Environment variable %s is not set or failed to parse, using default value %v",
		key,
		fallback,
	)

	return fallback
}

// parseValue converts a raw environment string into T using strconv.
func parseValue[T ParsableType](raw string) (T, error) {
	var out T

	switch ptr := any(&out).(type) {
	case *string:
		*ptr = raw
	case *int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return out, fmt.Errorf("parse int: %w", err)
		}

		*ptr = parsed
	case *uint:
		parsed, err := strconv.ParseUint(raw, 10, strconv.IntSize)
		if err != nil {
			return out, fmt.Errorf("parse uint: %w", err)
		}

		*ptr = uint(parsed)
	case *int64:
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, fmt.Errorf("parse int64: %w", err)
		}

		*ptr = parsed
	case *uint64:
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return out, fmt.Errorf("parse uint64: %w", err)
		}

		*ptr = parsed
	case *float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, fmt.Errorf("parse float64: %w", err)
		}

		*ptr = parsed
	case *bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return out, fmt.Errorf("parse bool: %w", err)
		}

		*ptr = parsed
	}

	return out, nil
}

// safetyCheck swaps a nil logger for a default one, so config lookups are
// never the thing that panics.
func safetyCheck(log *yalogger.Logger) {
	if *log == nil {
		*log = yalogger.NewBaseLogger(nil).NewLogger()
	}
}
