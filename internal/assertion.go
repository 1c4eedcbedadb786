package internal

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/assert-lib"
)

// assertHandler is constructed once at startup, the way vvfs/filesystem/
// fs.go builds one and threads it into its managers. Callers reach it
// through Check rather than directly, so the release-vs-debug decision
// lives in one place.
var assertHandler = assert.NewAssertHandler()

// Check reports a non-fatal internal-invariant violation: pruning-bound
// admissibility, comment-weight saturation, adjacency sortedness, and
// similar checks that should never fire against correct input but whose
// failure should not take the whole run down in production. A violation
// is always logged; in a debug build (GRAPHCORE_DEBUG set) it additionally
// panics through assertHandler so the violation is caught at its source.
// In a release build the caller continues with the result it already
// computed; Check substitutes no conservative value.
func Check(subsystem string, condition bool, format string, args ...any) {
	if condition {
		return
	}
	msg := fmt.Sprintf(format, args...)
	logger.Warn().Str("subsystem", subsystem).Msg(msg)
	if Debug {
		assertHandler.Assert(context.Background(), condition, msg)
	}
}
