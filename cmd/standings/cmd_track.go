package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"standings/cmd/standings/ui"
	"standings/internal/logging"
	"standings/internal/tracker"
)

var fromStart bool

// trackCmd follows the game log and prints standing changes
var trackCmd = &cobra.Command{
	Use:   "track [path]",
	Short: "Follow EE.log and print standing changes as they happen",
	Long: `Watches the game client's EE.log and applies every syndicate standing
change it reports to the configured starting standings. Runs until
interrupted, then prints the final standings and a recommendation.

Without a path the log_path from the config is used, falling back to the
platform default location.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrack,
}

// defaultPathCmd prints where EE.log normally lives
var defaultPathCmd = &cobra.Command{
	Use:   "default-path",
	Short: "Print the default EE.log location for this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := tracker.HostDefaultLogPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	trackCmd.Flags().BoolVar(&fromStart, "from-start", false, "Replay the whole log instead of only new lines")
}

func resolveLogPath(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if cfg.LogPath != "" {
		return cfg.LogPath, nil
	}
	return tracker.HostDefaultLogPath()
}

func runTrack(cmd *cobra.Command, args []string) error {
	log := logging.For(logger, cfg.Logging, logging.CategoryCLI)

	path, err := resolveLogPath(args)
	if err != nil {
		return err
	}
	initial, err := cfg.InitialStandings()
	if err != nil {
		return err
	}

	sess := tracker.New(tracker.Options{
		Initial:      initial,
		Debounce:     cfg.GetDebounce(),
		PollInterval: cfg.GetPollInterval(),
		FromStart:    fromStart || cfg.FromStart,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logging.For(logger, cfg.Logging, logging.CategorySession),
		TailLogger:   logging.For(logger, cfg.Logging, logging.CategoryTail),
		ParseLogger:  logging.For(logger, cfg.Logging, logging.CategoryParse),
		LedgerLogger: logging.For(logger, cfg.Logging, logging.CategoryLedger),
	})

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	styles := ui.DefaultStyles()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for n := range sess.Notices() {
			fmt.Fprintln(out, ui.NoticeLine(styles, n))
		}
		return nil
	})

	if err := sess.StartWatching(ctx, path); err != nil {
		sess.Close()
		_ = g.Wait()
		return err
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Debug("shutting down tracker")
		sess.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	final := sess.Standings()
	log.Info("tracking finished", zap.Int("changes", len(sess.History())))
	fmt.Fprintln(out)
	fmt.Fprint(out, ui.StandingsTable(styles, "Final standings", final))
	fmt.Fprintln(out)
	fmt.Fprint(out, ui.RecommendationView(styles, sess.Recommend()))
	return nil
}
