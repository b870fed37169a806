// Package vtlog provides the structured diagnostic logger used by the
// vtcell demo. The core token/cell/grid/vt/
// render packages never log; logging exists only around them, matching the
// teacher's practice of keeping domain packages free of logging side
// effects and confining zerolog to the process/tui layers that already
// carry it as a declared (if previously unwired) dependency.
package vtlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger, writing human-readable
// console output by default (matching an interactive CLI's stderr, not a
// service's JSON log stream).
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

// SetLevel adjusts the minimum logged level; the demo's --verbose flag
// calls this with zerolog.DebugLevel.
func SetLevel(lvl zerolog.Level) {
	Logger = Logger.Level(lvl)
}

// BufferTrimmed logs the memory-cap trimmer discarding rows, a recoverable
// anomaly worth surfacing but never worth failing a write over.
func BufferTrimmed(component string, dropped, cap int) {
	Logger.Debug().Str("component", component).Int("dropped", dropped).Int("cap", cap).Msg("row cap trim")
}

// MalformedInput logs a byte sequence the engine could not interpret as a
// well-formed escape, recovered locally by the parser into an Invalid
// token.
func MalformedInput(raw []byte) {
	Logger.Warn().Bytes("raw", raw).Msg("malformed escape sequence recovered as text")
}

// EngineStarted logs the construction of a new engine-backed session.
func EngineStarted(width, height int) {
	Logger.Debug().Int("width", width).Int("height", height).Msg("engine constructed")
}
