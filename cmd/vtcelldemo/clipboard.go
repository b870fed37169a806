package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ClipboardFeedbackMsg carries a feedback message to display after a copy,
// adapted from the teacher's internal/tui/clipboard.go for copying the
// engine's rendered frame text instead of a process log buffer.
type ClipboardFeedbackMsg struct{ Message string }

// ClearClipboardFeedbackMsg clears the feedback line after a timeout.
type ClearClipboardFeedbackMsg struct{}

func clipboardFeedbackTimeout() tea.Cmd {
	return tea.Tick(2*time.Second, func(_ time.Time) tea.Msg {
		return ClearClipboardFeedbackMsg{}
	})
}

// clipboardSinks are the two ways a rendered frame can reach a clipboard:
// an OSC52 sequence written to the terminal (works over SSH, has no error
// signal a program can observe) and the host's native clipboard (works
// locally, fails cleanly over a remote session). A frame reaches whichever
// sink is available; the native attempt's error is only surfaced when OSC52
// gave the terminal nothing to fall back on.
func writeToClipboardSinks(text string) error {
	oscWritten := false
	if n, err := osc52.New(text).WriteTo(os.Stderr); err == nil && n > 0 {
		oscWritten = true
	}
	nativeErr := clipboard.WriteAll(text)
	if nativeErr == nil || oscWritten {
		return nil
	}
	return nativeErr
}

// copyVisibleFrame copies text to the clipboard and returns the feedback
// command batch. The run pane passes its last rendered frame, ANSI escape
// sequences included.
func copyVisibleFrame(text string) tea.Cmd {
	if err := writeToClipboardSinks(text); err != nil {
		return func() tea.Msg {
			return ClipboardFeedbackMsg{Message: fmt.Sprintf("[copy error: %v]", err)}
		}
	}
	return tea.Batch(
		func() tea.Msg { return ClipboardFeedbackMsg{Message: "[copied visible frame]"} },
		clipboardFeedbackTimeout(),
	)
}
