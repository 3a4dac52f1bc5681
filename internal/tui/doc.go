// Package tui provides terminal user interface components for arenactl.
//
// This package uses the Bubble Tea framework, primarily for the live
// match progress view shown while a match is being monitored.
//
// # Match Progress
//
// The progress view is fed from the monitor's status callback and ended
// by the caller once the match reaches a terminal state:
//
//	p := tui.NewProgress("my_game")
//	go func() {
//	    result, err = runner.Run(ctx, players, cfg, opts)
//	    p.Done(err)
//	}()
//	aborted, err := p.Run()
//
// The monitor is wired in with match.WithStatusFunc(p.StatusFunc()).
// Pressing ctrl+c aborts the view; the caller is expected to cancel the
// match context in response.
package tui
