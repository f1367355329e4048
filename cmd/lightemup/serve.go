package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightemup/internal/feed"
	"github.com/vovakirdan/lightemup/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
	flagAccessLog   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and announcement feed",
	Long: `Start an SSH server that lets users connect and play, together with the
HTTP announcement feed.

Each SSH connection gets its own session with the setup menu and plays under
its SSH user name. All sessions share the same leaderboard.

Feed endpoints:
  GET /poll_announcements  - Latest announcement as JSON
  GET /ws/announcements    - WebSocket stream of new announcements
  GET /leaderboard?limit=N - Players by best score
  GET /healthz             - Liveness check

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lightemup/host_key

Examples:
  lightemup serve                           # SSH on :23234, feed on the config address
  lightemup serve --ssh :2222 --http :9090
  lightemup serve --http ""                 # SSH only
  lightemup serve --access-log ./access.log

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Feed HTTP address (default from config, empty string disables)")
	serveCmd.Flags().StringVar(&flagAccessLog, "access-log", "", "Write the feed access log as JSON to this rotating file")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp("lightemup-serve", os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	httpAddr := a.cfg.Feed.Addr
	if cmd.Flags().Changed("http") {
		httpAddr = flagHTTPAddr
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = flagFPS

	sshServer, err := tui.NewSSHServer(sshCfg, a.store, a.services)
	if err != nil {
		return err
	}

	access := feed.NewAccessLog(flagAccessLog)
	defer access.Sync() //nolint:errcheck // Best-effort flush on exit
	feedServer := feed.NewServer(a.services.Leaderboard, a.logger, access)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Light 'Em Up SSH server on %s\n", sshCfg.Address)
	if httpAddr != "" {
		fmt.Printf("Announcement feed on %s\n", httpAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- sshServer.ListenAndServe(ctx) }()
	if httpAddr != "" {
		running++
		go func() { errCh <- feedServer.ListenAndServe(ctx, httpAddr) }()
	}

	// The first failure stops the other server too.
	var errs []error
	for i := 0; i < running; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
			stop()
		}
	}
	return errors.Join(errs...)
}
