package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"careconnect/internal/config"
	logpkg "careconnect/internal/logger"
	"careconnect/internal/service"
)

// cli global flags plus what PersistentPreRunE builds from them
type cli struct {
	configPath string
	store      string
	namespace  string
	logLevel   string

	logger *zap.Logger
	app    *service.App
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "careconnect",
		Short: "CareConnect caregiver console",
		Long: `CareConnect keeps caregiver preferences in a key-value store and
shows the patient, task and message lists of the demo dataset.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (default: $CARECONNECT_CONFIG)")
	root.PersistentFlags().StringVar(&c.store, "store", "", "Settings store backend: memory, sqlite, redis or postgres")
	root.PersistentFlags().StringVar(&c.namespace, "namespace", "", "Key namespace in the settings store")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newSettingsCmd(),
		newProfileCmd(),
		newPatientsCmd(),
		newTasksCmd(),
		newMessagesCmd(),
		newLoginCmd(),
	)
	return root
}

// setup loads configuration, builds the App and attaches it to the command context.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if c.store != "" {
		cfg.Store.Backend = c.store
	}
	if c.namespace != "" {
		cfg.App.Namespace = c.namespace
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.logger, err = logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "careconnect")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.app, err = service.NewApp(cmd.Context(), cfg, c.logger)
	if err != nil {
		return err
	}
	cmd.SetContext(service.WithApp(cmd.Context(), c.app))
	return nil
}

// close flushes pending settings writes; runs whether or not the command failed.
func (c *cli) close() error {
	var err error
	if c.app != nil {
		err = c.app.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := c.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
