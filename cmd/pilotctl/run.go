package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hongminglow/pilot-auth/internal/config"
	"github.com/hongminglow/pilot-auth/internal/gateway"
	"github.com/hongminglow/pilot-auth/internal/logging"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

const usage = `usage: pilotctl <command> [flags]

commands:
  health                 check server liveness
  login  -account NAME   exchange credentials for an access token
  me     -token TOKEN    print the current user's profile
  logout -token TOKEN    tell the server to revoke the token
`

// run executes one command. environ replaces the process environment for
// every setting the command reads.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, environ map[string]string) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.LoadClient(environ)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logger := logging.NewFromString(stderr, cfg.LogLevel)
	client := gateway.NewHTTP(cfg.Host, cfg.Timeout, logger)

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	account := fs.String("account", "", "account name or email")
	token := fs.String("token", "", "access token (default $PILOT_TOKEN)")
	if err := fs.Parse(rest); err != nil {
		return 2
	}
	if *token == "" {
		*token = environ["PILOT_TOKEN"]
	}

	switch cmd {
	case "health":
		if client.CheckHealth(ctx) {
			fmt.Fprintln(stdout, "healthy")
			return 0
		}
		fmt.Fprintln(stdout, "unhealthy")
		return 1

	case "login":
		if *account == "" {
			fmt.Fprintln(stderr, "login: -account is required")
			return 2
		}
		password, err := obtainPassword(stderr, environ)
		if err != nil {
			fmt.Fprintf(stderr, "login: %v\n", err)
			return 1
		}
		accessToken, err := client.Login(ctx, *account, password)
		if err != nil {
			return fail(stderr, "login", err)
		}
		fmt.Fprintln(stdout, accessToken)
		return 0

	case "me":
		profile, err := client.FetchUserProfile(ctx, *token)
		if err != nil {
			return fail(stderr, "me", err)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(profile); err != nil {
			fmt.Fprintf(stderr, "me: %v\n", err)
			return 1
		}
		return 0

	case "logout":
		if err := client.Logout(ctx, *token); err != nil {
			return fail(stderr, "logout", err)
		}
		fmt.Fprintln(stdout, "logged out")
		return 0
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
	return 2
}

func fail(stderr io.Writer, op string, err error) int {
	var cv *gateway.ContractViolation
	if errors.As(err, &cv) {
		fmt.Fprintf(stderr, "%s: server rejected request: %s\n", op, cv.Reason)
	} else {
		fmt.Fprintf(stderr, "%s: %v\n", op, err)
	}
	return 1
}

func obtainPassword(w io.Writer, environ map[string]string) (string, error) {
	if pw := environ["PILOT_PASSWORD"]; pw != "" {
		return pw, nil
	}
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(string(pw), "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}
