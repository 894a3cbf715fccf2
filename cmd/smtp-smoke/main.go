package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xmit-sh/smtp-smoke/internal/config"
	"github.com/xmit-sh/smtp-smoke/internal/logging"
	"github.com/xmit-sh/smtp-smoke/internal/mail"
)

// The submission endpoint authenticates API keys under a fixed username.
const submissionUser = "api"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "smtp-smoke",
		Short: "Send a single test email through the xmit-mail submission endpoint",
		Long: `smtp-smoke verifies that an xmit-mail SMTP endpoint is reachable and
accepting authenticated submissions. It reads its configuration from the
XMIT_* environment variables, sends one fixed plaintext message, and exits
0 on success or 1 on any failure.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(run(os.Stdout, newSMTPSender))
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newSMTPSender builds the real submission client from the resolved
// configuration.
func newSMTPSender(cfg *config.Config, logger *slog.Logger) mail.Sender {
	return &mail.Client{
		Addr:     cfg.Addr(),
		Username: submissionUser,
		Password: cfg.APIKey,
		Logger:   logger,
	}
}

// run is the whole program: resolve config, send the test message, map the
// outcome to the operator lines and an exit status. All operator output
// goes to out; first matching failure branch wins.
func run(out io.Writer, newSender func(*config.Config, *slog.Logger) mail.Sender) int {
	cfg, err := config.FromEnv()
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			fmt.Fprint(out, missing.Usage())
			return 1
		}
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	sender := newSender(cfg, logger)

	fmt.Fprintf(out, "Connecting to %s:%d...\n", cfg.Host, cfg.Port)

	msg := mail.NewMessage(cfg.FromEmail, cfg.ToEmail)
	err = sender.Send(context.Background(), msg)

	var authErr *mail.AuthError
	var protoErr *mail.ProtocolError
	switch {
	case err == nil:
		fmt.Fprintln(out, "Email sent successfully!")
		fmt.Fprintf(out, "  From: %s\n", cfg.FromEmail)
		fmt.Fprintf(out, "  To:   %s\n", cfg.ToEmail)
		return 0
	case errors.As(err, &authErr):
		fmt.Fprintln(out, "Error: Authentication failed. Check your API key.")
		return 1
	case errors.As(err, &protoErr):
		fmt.Fprintf(out, "Error: SMTP error - %v\n", protoErr)
		return 1
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
}
