// Command logiksimd runs the LogikSim simulation core as a standalone
// process: a builtin component library, a controller goroutine, and a
// periodic diagnostic dump, wired together the way the teacher's
// samples/passthrough wires an engine, a driver, and a device.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/logiksim/core/controller"
	"github.com/logiksim/core/internal/diag"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/internal/lint"
	"github.com/logiksim/core/internal/stimgen"
	"github.com/logiksim/core/internal/tracelog"
	"github.com/logiksim/core/library"
)

func main() {
	rate := flag.Float64("rate", 0, "simulation rate in Hz; 0 runs as fast as possible")
	snapshotEvery := flag.Duration("snapshot", 0, "wall-clock interval between diagnostic snapshots; 0 disables")
	driveElement := flag.String("drive-element", "", "id of an element whose input is driven by a generator; empty disables")
	drivePort := flag.Int("drive-port", 0, "input port driven by -drive-element's generator")
	drivePattern := flag.String("drive-pattern", "clock", "stimgen.ParseSpec string: \"clock\", \"0\", \"1\", or a comma-separated bit pattern")
	driveInterval := flag.Duration("drive-interval", time.Second, "interval between generator-driven edges")
	flag.Parse()

	registry, err := library.NewBuiltins()
	if err != nil {
		tracelog.Fatal("failed to load component library", "err", err)
		atexit.Exit(1)
		return
	}

	commands := make(chan controller.Command)
	updates := make(chan controller.Update, 256)

	ctrl := controller.New(registry, commands, updates)
	if *rate > 0 {
		ctrl.SetRate(sim.Freq(*rate) * sim.Hz)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.Run(ctx)
	}()

	go logUpdates(updates)

	if *snapshotEvery > 0 {
		go printSnapshots(ctx, commands, *snapshotEvery)
	}

	if *driveElement != "" {
		id, err := ident.ParseString(*driveElement)
		if err != nil {
			tracelog.Fatal("invalid -drive-element", "value", *driveElement, "err", err)
			atexit.Exit(1)
			return
		}
		gen := stimgen.ParseSpec(*drivePattern)
		go driveStimulus(ctx, commands, id, *drivePort, gen, *driveInterval)
	}

	<-done
	atexit.Exit(0)
}

// logUpdates drains the controller's update stream so a command
// sender that ignores ReplyTo never blocks the core loop, surfacing
// errors through tracelog the way the teacher logs a dropped event.
func logUpdates(updates <-chan controller.Update) {
	for u := range updates {
		switch u.Kind {
		case controller.UpdateError:
			tracelog.Warn("command failed", "element", u.Element.String(), "err", u.Err)
		case controller.UpdateOutputChanged:
			tracelog.Trace("output changed", "element", u.Element.String(), "port", u.Port, "value", u.Value, "tick", u.When)
		}
	}
}

// driveStimulus scripts an external input port from a generator
// (internal/stimgen), sending one schedule_edge command per tick of
// interval the way a testbench drives a primary input without a real
// upstream element.
func driveStimulus(ctx context.Context, commands chan<- controller.Command, id ident.ID, port int, gen func() bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case commands <- controller.Command{Op: controller.OpScheduleEdge, Element: id, Port: port, Value: gen()}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// printSnapshots requests a diagnostic dump over the command channel
// on a fixed wall-clock interval, rather than reading the controller's
// tables directly, since only the goroutine running Run may touch
// them (controller.Controller.Snapshot).
func printSnapshots(ctx context.Context, commands chan<- controller.Command, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	reply := make(chan controller.Update, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case commands <- controller.Command{Op: controller.OpSnapshot, ReplyTo: reply}:
			case <-ctx.Done():
				return
			}
			select {
			case upd := <-reply:
				fmt.Fprintln(os.Stderr, diag.Render(upd.Snapshot))
				for _, issue := range lint.Check(upd.Snapshot) {
					tracelog.Warn("lint", "kind", issue.Kind.String(), "message", issue.Message)
				}
			case <-ctx.Done():
				return
			}
		}
	}
}
