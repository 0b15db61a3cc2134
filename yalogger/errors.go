package yalogger

import "errors"

var ErrInvalidLogLevel = errors.New("invalid log level")
