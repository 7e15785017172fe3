// Package cmd implements the fstelegraf command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"codeberg.org/mutker/fstelegraf/internal/collector"
	"codeberg.org/mutker/fstelegraf/internal/config"
	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/esl"
	"codeberg.org/mutker/fstelegraf/internal/logger"
	"codeberg.org/mutker/fstelegraf/internal/pid"
	"codeberg.org/mutker/fstelegraf/internal/telemetry"
	"github.com/spf13/cobra"
)

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// session is the command channel a collection cycle runs against.
type session interface {
	collector.Executor
	Close() error
}

var dialSession = func(ctx context.Context, cfg esl.Config) (session, error) {
	client, err := esl.Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fstelegraf",
		Short: "Collect FreeSWITCH statistics as influx line protocol",
		Long: "fstelegraf connects to a FreeSWITCH event socket, runs the status,\n" +
			"timer, sofia and conference reports once, and prints the parsed\n" +
			"counters to stdout in influx line protocol for telegraf's exec input.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCollect,
	}

	config.RegisterFlags(rootCmd.Flags())

	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("fstelegraf version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(cmd.ErrOrStderr(), level, logger.IsService())
	logger.Debug().Str("address", cfg.Address()).Msg("Config loaded")

	if cfg.PIDFile != "" {
		if err := pid.Write(cfg.PIDFile); err != nil {
			return err
		}
		defer func() {
			if err := pid.Remove(cfg.PIDFile); err != nil {
				logger.Warn().Err(err).Msg("Failed to remove PID file")
			}
		}()
	}

	return collectOnce(cmd.Context(), cfg, cmd.OutOrStdout())
}

// collectOnce runs a single cycle: connect, collect, emit, disconnect.
func collectOnce(ctx context.Context, cfg *config.Config, out io.Writer) error {
	sess, err := dialSession(ctx, esl.Config{
		Address:  cfg.Address(),
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		if appErr, ok := err.(errors.Error); ok {
			logger.ErrorWithCode(appErr).Str("address", cfg.Address()).Msg("Failed to connect to switch")
		} else {
			logger.Error().Err(err).Str("address", cfg.Address()).Msg("Failed to connect to switch")
		}
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to close event socket")
		}
	}()

	coll := collector.New(sess, collector.Config{
		TimerInterval: cfg.TimerInterval,
		TimerSamples:  cfg.TimerSamples,
	})
	snapshot := &telemetry.Snapshot{
		CollectedAt: time.Now(),
		Metrics:     coll.Collect(ctx),
	}
	logger.Info().Int("records", len(snapshot.Metrics)).Msg("Collection finished")

	sink, err := telemetry.NewService(telemetry.Config{Out: out})
	if err != nil {
		return err
	}
	defer sink.Close()

	return sink.Record(ctx, snapshot)
}
