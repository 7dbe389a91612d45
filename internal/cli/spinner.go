package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

type (
	spinnerTickMsg time.Time
	spinnerDoneMsg struct{}
)

// spinnerModel animates a braille spinner next to a message. The final
// view is empty so quitting clears the spinner line.
type spinnerModel struct {
	message string
	frame   int
	done    bool
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (m spinnerModel) Init() tea.Cmd {
	return spinnerTick()
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case spinnerTickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, spinnerTick()
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", StyleTitle.Render(spinnerFrames[m.frame]), m.message)
}

// Spinner shows progress on stderr while a long step runs. It stops on
// its own when the bound context is cancelled.
type Spinner struct {
	ctx  context.Context
	prog *tea.Program
	done chan struct{}
	stop sync.Once
}

// NewSpinner builds a spinner bound to ctx.
func NewSpinner(ctx context.Context, message string) *Spinner {
	prog := tea.NewProgram(
		spinnerModel{message: message},
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	return &Spinner{ctx: ctx, prog: prog, done: make(chan struct{})}
}

// Start begins the animation and returns immediately.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		_, _ = s.prog.Run()
	}()
}

// Stop ends the animation and clears the spinner line. Safe to call
// more than once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.prog.Send(spinnerDoneMsg{})
		<-s.done
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess(msg)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError(msg)
}

// Cancelled reports whether the surrounding context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
