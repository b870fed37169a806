package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
	"github.com/spf13/cobra"

	"github.com/kimaguri/vtcell/internal/vtcellcfg"
	"github.com/kimaguri/vtcell/internal/vtlog"
)

func newRunCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "run a subprocess under a PTY and repaint its output through the vtcell engine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := vtcellcfg.Load(configPathFlag)
			if err != nil {
				return err
			}
			if width > 0 {
				cfg.Width = width
			}
			if height > 0 {
				cfg.Height = height
			}
			return runSession(cfg, args[0], args[1:])
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "override viewport width")
	cmd.Flags().IntVar(&height, "height", 0, "override viewport height")
	return cmd
}

type tickMsg time.Time

type processExitMsg struct{ err error }

// runModel is the bubbletea pane that repaints a Session's full-frame
// render at cfg.FPS, adapted from the teacher's dashboardModel shape
// (bordered pane, help footer, clipboard feedback line) but driven by the
// engine's render() output instead of a process log buffer.
type runModel struct {
	sess     *Session
	fps      int
	width    int
	height   int
	frame    string
	feedback string
	done     bool
	exitErr  error
	help     help.Model
}

func newRunModel(sess *Session, cfg vtcellcfg.Config) runModel {
	h := help.New()
	h.Width = cfg.Width
	return runModel{sess: sess, fps: cfg.FPS, width: cfg.Width, height: cfg.Height, help: h}
}

func (m runModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, keys.Copy):
			return m, copyVisibleFrame(m.frame)
		}
	case tickMsg:
		m.frame = string(m.sess.Render())
		if m.done {
			return m, nil
		}
		return m, tickCmd(m.fps)
	case ClipboardFeedbackMsg:
		m.feedback = msg.Message
		return m, nil
	case ClearClipboardFeedbackMsg:
		m.feedback = ""
		return m, nil
	case processExitMsg:
		m.done = true
		m.exitErr = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m runModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("vtcelldemo — %dx%d @ %dfps", m.width, m.height, m.fps))
	body := paneBorder.Width(m.width + 2).Render(m.frame)
	footer := helpStyle.Render(m.help.View(keys))
	lines := []string{header, body, footer}
	if m.feedback != "" {
		lines = append(lines, feedbackStyle.Render(ansi.Wordwrap(m.feedback, m.width, "")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// runSession spawns command under a PTY, feeds its output into a Session,
// and drives a bubbletea program that repaints the session's render()
// output at cfg.FPS. Grounded on the teacher's internal/process/pty.go
// (creack/pty spawn) and internal/process/manager.go's Start (PTY +
// goroutine wiring), simplified to a single foreground subprocess instead
// of the teacher's multi-process registry.
func runSession(cfg vtcellcfg.Config, command string, args []string) error {
	vtlog.EngineStarted(cfg.Width, cfg.Height)
	sess := NewSession(cfg.Width, cfg.Height, cfg.RowCap)

	c := exec.Command(command, args...)
	ptyFile, err := pty.StartWithSize(c, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return fmt.Errorf("start %q under pty: %w", command, err)
	}
	defer ptyFile.Close()

	sess.SetQueryResponder(func(reply []byte) {
		_, _ = ptyFile.Write(reply)
	})

	model := newRunModel(sess, cfg)
	p := tea.NewProgram(model)

	go func() {
		_, copyErr := io.Copy(sess, ptyFile)
		waitErr := c.Wait()
		if copyErr != nil && waitErr == nil {
			waitErr = copyErr
		}
		p.Send(processExitMsg{err: waitErr})
	}()

	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}
