// Package diag is the diagnostic channel for conditions that are reported
// rather than returned: caller bugs (assigning a property outside its
// scope) and declined materializations.
package diag

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// Init installs a development logger. Called once by the CLI; library
// consumers may leave the default no-op logger in place.
func Init(verbose bool) {
	var l *zap.Logger
	var err error
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return
	}
	logger = l.Sugar()
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Errorf logs a formatted error.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
