// Command practice parses saved model output and builds exercise decks
// offline, without the HTTP server or a language-model key.
//
// Input is read from the file named by the first argument, or stdin when
// the argument is omitted or "-". Output is JSON on stdout.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
