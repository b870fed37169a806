package main

import (
	"sync"

	"github.com/kimaguri/vtcell/internal/vtlog"
	"github.com/kimaguri/vtcell/render"
	"github.com/kimaguri/vtcell/vt"
)

// Session wraps a *vt.Engine to provide thread-safe access: a PTY reader
// goroutine writes subprocess output while the bubbletea UI goroutine reads
// rendered frames. Grounded on the teacher's internal/process/vterm.go
// VTermScreen, which wrapped vt10x.Terminal in exactly this sync.RWMutex
// shape for the same reason — this is host-application plumbing (§5), not
// a core-library guarantee.
type Session struct {
	mu     sync.RWMutex
	engine *vt.Engine
}

// NewSession constructs a Session around a fresh engine of the given size,
// wiring the engine's trim/malformed-input hooks to vtlog so those
// recoverable anomalies are visible without the engine itself logging.
func NewSession(width, height, rowCap int) *Session {
	engine := vt.New(width, height,
		vt.WithRowCap(rowCap),
		vt.WithTrimHook(func(dropped, cap int) { vtlog.BufferTrimmed("vt.Engine", dropped, cap) }),
		vt.WithMalformedHook(vtlog.MalformedInput),
	)
	return &Session{engine: engine}
}

// Write implements io.Writer, feeding raw subprocess bytes to the engine.
// Called from the PTY reader goroutine.
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Write(p)
	return len(p), nil
}

// RenderSince returns the differential rewrite since seq, and the new
// checkpoint to pass on the next call.
func (s *Session) RenderSince(seq uint64) ([]byte, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.engine.RenderSince(seq)
	return out, s.engine.LastRenderedSeq()
}

// Render returns the full relative-positioning frame.
func (s *Session) Render() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Render()
}

// Snapshot projects the current viewport into a CellBuffer.
func (s *Session) Snapshot() *render.CellBuffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Snapshot()
}

// SetQueryResponder registers the DSR/color-query reply callback.
func (s *Session) SetQueryResponder(f func([]byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetQueryResponder(f)
}
