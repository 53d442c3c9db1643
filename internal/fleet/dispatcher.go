package fleet

import (
	"context"
	"fmt"
	"io"

	"github.com/AOSC-Dev/shipit-fleet/internal/ssh"
	"github.com/fatih/color"
)

// Summary counts the outcome of a run
type Summary struct {
	Total     int
	Succeeded int
	Failed    []ServerEntry
}

// Dispatcher runs one operation on every server of a list, in order.
// A failing server is reported and the run moves on to the next line.
type Dispatcher struct {
	runner    ssh.Runner
	commands  Commands
	out       io.Writer
	okColor   *color.Color
	failColor *color.Color
	onCommand func(entry ServerEntry, command string)
}

// NewDispatcher creates a dispatcher printing progress to out
func NewDispatcher(runner ssh.Runner, commands Commands, out io.Writer) *Dispatcher {
	return &Dispatcher{
		runner:    runner,
		commands:  commands,
		out:       out,
		okColor:   color.New(color.FgGreen, color.Bold),
		failColor: color.New(color.FgRed, color.Bold),
	}
}

// SetColor forces coloured status output on or off
func (d *Dispatcher) SetColor(enabled bool) {
	for _, c := range []*color.Color{d.okColor, d.failColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// OnCommand sets a callback invoked before each entry's progress line
func (d *Dispatcher) OnCommand(fn func(entry ServerEntry, command string)) {
	d.onCommand = fn
}

// Run executes the named operation for every entry read from list.
//
// The operation name is resolved when the first entry has been read, so an
// empty list never reports an unknown operation. An unknown name stops the
// run with ErrUnknownOperation before any remote command. Per-server
// failures do not produce an error.
func (d *Dispatcher) Run(ctx context.Context, operation string, list io.Reader) (*Summary, error) {
	summary := &Summary{}
	reader := NewServerListReader(list)

	for {
		entry, ok := reader.Next()
		if !ok {
			break
		}

		op, err := ParseOperation(operation)
		if err != nil {
			return summary, err
		}

		command, err := d.commands.For(op)
		if err != nil {
			return summary, err
		}

		summary.Total++
		if d.dispatch(ctx, op, entry, command) {
			summary.Succeeded++
		} else {
			summary.Failed = append(summary.Failed, entry)
		}
	}

	if err := reader.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, op Operation, entry ServerEntry, command string) bool {
	if d.onCommand != nil {
		d.onCommand(entry, command)
	}

	fmt.Fprintf(d.out, "%s on %s (port %s)... ", d.commands.Progress(op), entry.Hostname, entry.Port)

	if err := d.runner.Run(ctx, entry.Port, command); err != nil {
		d.failColor.Fprintf(d.out, "Failed to %s on %s (port %s): %v\n",
			d.commands.Action(op), entry.Hostname, entry.Port, err)
		return false
	}

	d.okColor.Fprint(d.out, "OK!")
	fmt.Fprintln(d.out)
	return true
}
