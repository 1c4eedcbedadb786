// Package internal holds process-wide constants and the logger factory
// shared by every other package in the module.
package internal

import (
	"os"

	"github.com/rs/zerolog"
)

const (
	DefaultAppName = "graphcore"

	// DefaultReplyWindow is the monotone window W used by the streaming
	// comment-reply-graph builder (component C).
	DefaultReplyWindow = 128

	// DefaultCentralityLevels is the number of BFS levels used by Q4's
	// reachability estimation (component J).
	DefaultCentralityLevels = 12

	// DefaultMorselSize is the number of persons handed to a single Q4
	// worker task once the sequential warm-up phase ends.
	DefaultMorselSize = 128

	// DefaultBatchWidth is the reference's 64-seed bitmap-BFS wave width.
	// The Q4 engine here runs one BFS per seed and does not use it.
	DefaultBatchWidth = 64

	// QueryDigitOffset is the fixed byte offset of the query-type digit in
	// a query-file line, per spec.
	QueryDigitOffset = 5
)

// Debug toggles whether internal-invariant violations panic (debug build)
// or are only logged (release build); no result is altered in either case.
// It is set once at startup from the GRAPHCORE_DEBUG environment variable.
var Debug = os.Getenv("GRAPHCORE_DEBUG") != ""

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

// Logger returns the process-wide structured logger.
func Logger() *zerolog.Logger {
	return &logger
}

// Fatalf logs a diagnostic naming the failing file/record and exits
// non-zero, per the fatal error-handling contract in spec.md §7.
func Fatalf(file string, cause string, args ...any) {
	logger.Error().Str("file", file).Msgf(cause, args...)
	os.Exit(1)
}
