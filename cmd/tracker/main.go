package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/fconline-tracker/internal/app"
	"github.com/riskibarqy/fconline-tracker/internal/config"
	"github.com/riskibarqy/fconline-tracker/internal/observability"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rt := &session{}
	err := execute(ctx, rt, newRootCmd(rt))
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and always releases what setup opened, also
// when the command itself failed.
func execute(ctx context.Context, rt *session, root *cobra.Command) error {
	runErr := root.ExecuteContext(ctx)
	if err := rt.teardown(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// session carries state opened by PersistentPreRunE for the subcommands.
type session struct {
	warmMetadata bool

	logger    *logging.Logger
	container *app.Container
	shutdown  observability.ShutdownFunc
	span      trace.Span
}

func newRootCmd(rt *session) *cobra.Command {
	root := &cobra.Command{
		Use:          "tracker",
		Short:        "FC Online match tracker maintenance commands",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd.Context(), cmd)
		},
	}
	root.PersistentFlags().BoolVar(&rt.warmMetadata, "warm-metadata", false, "load every metadata table before running the command")

	root.AddCommand(
		newBuildPlayerCacheCmd(rt),
		newLoadMetadataCmd(rt),
		newReextractShotsCmd(rt),
		newUpdatePlayerNamesCmd(rt),
	)
	return root
}

func (rt *session) setup(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt.logger = logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"command", cmd.Name(),
	)
	logging.SetDefault(rt.logger)

	rt.shutdown, err = observability.InitUptrace(cfg, rt.logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}

	ctx, rt.span = otel.Tracer("fconline-tracker/cmd/tracker").Start(ctx, "tracker."+cmd.Name(),
		trace.WithAttributes(attribute.Bool("warm_metadata", rt.warmMetadata)),
	)
	cmd.SetContext(ctx)

	rt.container, err = app.New(ctx, cfg, rt.logger)
	if err != nil {
		rt.logger.Error("build app", "error", err)
		_ = rt.teardown()
		return err
	}

	if rt.warmMetadata {
		rt.container.WarmMetadata(ctx)
	}
	return nil
}

// teardown is safe to call more than once.
func (rt *session) teardown() error {
	var closeErr error
	if rt.container != nil {
		closeErr = rt.container.Close()
		rt.container = nil
	}
	if rt.span != nil {
		rt.span.End()
		rt.span = nil
	}
	if rt.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.shutdown(ctx); err != nil && rt.logger != nil {
			rt.logger.Warn("shutdown uptrace", "error", err)
		}
		rt.shutdown = nil
	}
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
	return closeErr
}
