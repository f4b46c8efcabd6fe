// Unix/Darwin signal handling for stopping -watch mode.
//
// This file is compiled on all non-Windows platforms. SIGTERM is included so
// process managers and container runtimes can stop a watching instance.

//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// signalContext returns a context cancelled on SIGINT or SIGTERM. In-flight
// requests observe the cancellation, so a pass stops at its next fetch.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
