// Command tcactl is the member console: it signs a member in and out and
// manages their business profile against a running TCA server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/config"
	"github.com/xw1nchester/tca-backend/internal/profile"
	"github.com/xw1nchester/tca-backend/internal/session"
	tcaclient "github.com/xw1nchester/tca-backend/pkg/client/tca"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `usage: tcactl <command> [flags]

commands:
  sign-up         -email -password -company [-url]
  sign-in         -email -password
  sign-out
  whoami
  reset-password  -email
  profile show
  profile edit    [-name -description -phone -email -website -address -city -state -zip -services -logo]
  profile delete
  directory       [-page n] [search]

environment:
  TCA_URL, TCA_API_KEY, TCA_SESSION_FILE
`

type console struct {
	client    *tcaclient.Client
	sessions  *session.Manager
	dashboard *profile.Dashboard
	follow    backend.Subscription
	logger    *zap.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	switch args[0] {
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	c := newConsole(cfg, logger)
	defer c.close()

	c.follow = c.sessions.Follow(ctx, c.dashboard)

	if err := c.sessions.Start(ctx); err != nil && backend.KindOf(err) != backend.KindUnreachable {
		return err
	}

	switch args[0] {
	case "sign-up":
		return c.signUp(ctx, args[1:])
	case "sign-in":
		return c.signIn(ctx, args[1:])
	case "sign-out":
		return c.sessions.SignOut(ctx)
	case "whoami":
		return c.whoami()
	case "reset-password":
		return c.resetPassword(ctx, args[1:])
	case "profile":
		return c.profile(ctx, args[1:])
	case "directory":
		return c.directory(ctx, args[1:])
	}

	return fmt.Errorf("unknown command %q", args[0])
}

func newConsole(cfg *config.Client, logger *zap.Logger) *console {
	sessionFile := cfg.SessionFile
	if sessionFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			sessionFile = filepath.Join(dir, "tca", "session.json")
		}
	}

	client := tcaclient.New(tcaclient.Config{
		URL:         cfg.URL,
		APIKey:      cfg.APIKey,
		SessionFile: sessionFile,
		Logger:      logger,
	})

	return &console{
		client:   client,
		sessions: session.New(client, logger),
		dashboard: profile.NewDashboard(
			profile.NewResolver(client, logger),
			profile.NewGateway(client, logger),
			logger,
		),
		logger: logger,
	}
}

func (c *console) close() {
	if c.follow != nil {
		c.follow.Unsubscribe()
	}
	c.sessions.Close()
	c.client.Close()
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if os.Getenv("TCA_DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var errSignedOut = errors.New("not signed in, run tcactl sign-in first")
