// Package display renders the CLI walkthrough: colored step output and a
// countdown that polls session status on a ticker. The countdown is a
// convenience wrapper around the lazy timer; the core never sleeps.
package display

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/hammamikhairi/souschef/internal/engine"
)

var (
	stepColor   = color.New(color.FgCyan, color.Bold)
	noticeColor = color.New(color.FgRed, color.Bold)
	faintColor  = color.New(color.Faint)
)

// Banner prints the walkthrough header.
func Banner(recipeName string) {
	fmt.Println()
	stepColor.Printf("── Cooking: %s ──\n", recipeName)
	faintColor.Println("commands: next, repeat, timer, status, help, quit, or type a duration like \"5 min\"")
	fmt.Println()
}

// Step prints one step line.
func Step(number int, text string, hasTimerHint bool) {
	stepColor.Printf("Step %d: ", number)
	fmt.Println(text)
	if hasTimerHint {
		faintColor.Println("(this step mentions a wait; type \"timer\" to start it)")
	}
}

// Notice prints an urgent line, e.g. a timer completion.
func Notice(msg string) {
	noticeColor.Println(msg)
}

// Info prints a plain informational line.
func Info(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

// Countdown polls the session status once a second and renders the
// remaining time until the timer completes, the session vanishes, or ctx
// is cancelled. Blocking is confined to this caller-side loop.
func Countdown(ctx context.Context, eng *engine.Engine, sessionID string) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, err := eng.Status(ctx, sessionID)
			if err != nil {
				return
			}
			if st.TimerNotice != "" {
				fmt.Println()
				Notice(st.TimerNotice)
				return
			}
			if st.Timer == nil || !st.Timer.Active {
				return
			}
			fmt.Printf("\r%s remaining...  ", formatRemaining(st.Timer.RemainingSeconds))
		}
	}
}

// formatRemaining renders seconds as m:ss once past a minute.
func formatRemaining(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
