package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// DiffProgressModel - Live progress while comparing trees
// =============================================================================

type progressMsg struct {
	completed int
	total     int
}

type progressDoneMsg struct{}

type progressFrameMsg time.Time

func progressTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return progressFrameMsg(t)
	})
}

// DiffProgressModel is the bubbletea model shown while a comparison runs.
// It renders a spinner plus a file counter once the tree has been resolved.
type DiffProgressModel struct {
	Message   string
	Completed int
	Total     int
	frame     int
}

func (m DiffProgressModel) Init() tea.Cmd {
	return progressTick()
}

func (m DiffProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressFrameMsg:
		m.frame++
		return m, progressTick()
	case progressMsg:
		m.Completed = msg.completed
		m.Total = msg.total
		return m, nil
	case progressDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DiffProgressModel) View() string {
	frame := styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	line := frame + " " + m.Message
	if m.Total > 0 {
		line += " " + StyleDim.Render(fmt.Sprintf("[%d/%d files]", m.Completed, m.Total))
	}
	return line
}

// =============================================================================
// diffProgress - Program wrapper
// =============================================================================

// diffProgress drives a DiffProgressModel on stderr. Report is safe to call
// from any goroutine and is shaped to plug into pipeline.Options.Progress.
type diffProgress struct {
	prog *tea.Program
	done chan struct{}
}

func newDiffProgress(message string) *diffProgress {
	model := DiffProgressModel{Message: message}
	return &diffProgress{
		prog: tea.NewProgram(model,
			tea.WithOutput(os.Stderr),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
}

// Start runs the program in the background.
func (p *diffProgress) Start() {
	go func() {
		defer close(p.done)
		_, _ = p.prog.Run()
	}()
}

// Report updates the file counter.
func (p *diffProgress) Report(completed, total int) {
	p.prog.Send(progressMsg{completed: completed, total: total})
}

// Stop quits the program and waits for the terminal to be restored.
func (p *diffProgress) Stop() {
	p.prog.Send(progressDoneMsg{})
	<-p.done
}
