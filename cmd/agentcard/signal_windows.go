// Windows signal handling for stopping -watch mode.
//
// Windows has no SIGTERM; the Go runtime maps Ctrl+C, CTRL_BREAK_EVENT and
// console-close events to os.Interrupt.

//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// signalContext returns a context cancelled on os.Interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
