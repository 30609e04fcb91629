package bootstrap

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// StepReporter receives progress events from the bootstrap sequence.
type StepReporter interface {
	Step(name string)
	Done(name string)
	Fail(name string, err error)
	Banner(lines ...string)
}

var (
	stepStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
)

// ConsoleReporter renders step progress to a writer. One line per event, so
// the output stays grep-able when redirected to a file.
type ConsoleReporter struct {
	Out io.Writer
}

// NewConsoleReporter returns a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{Out: out}
}

func (r *ConsoleReporter) Step(name string) {
	fmt.Fprintln(r.Out, stepStyle.Render("==> "+name))
}

func (r *ConsoleReporter) Done(name string) {
	fmt.Fprintln(r.Out, doneStyle.Render("    ok: "+name))
}

func (r *ConsoleReporter) Fail(name string, err error) {
	fmt.Fprintln(r.Out, failStyle.Render(fmt.Sprintf("    failed: %s: %v", name, err)))
}

func (r *ConsoleReporter) Banner(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(r.Out, bannerStyle.Render(line))
	}
}
