// Command pilotctl runs the pilot auth operations from a shell.
//
//	pilotctl health
//	pilotctl login -account alice
//	pilotctl me -token <token>
//	pilotctl logout -token <token>
//
// PILOT_HOST selects the server. -token falls back to PILOT_TOKEN and the
// login password to PILOT_PASSWORD before prompting on the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, env.ToMap(os.Environ())))
}
