// Command geo runs geographer operations from the command line or serves
// them over HTTP.
//
// Usage:
//
//	geo ops --domain circles
//	geo describe circle_intersection
//	geo invoke distance --arg a=[0,0] --arg b=[3,4]
//	geo presets -o json
//	geo serve --server-addr :8080
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
