package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charliek/procshim/internal/config"
	"github.com/charliek/procshim/internal/constants"
	"github.com/charliek/procshim/internal/domain"
	"github.com/charliek/procshim/internal/supervisor"
	"github.com/spf13/cobra"
)

// Version is set during build
var Version = "dev"

// options holds the values of the root command's flags
type options struct {
	configPath  string
	dir         string
	shell       string
	envFile     string
	stopTimeout time.Duration
	verbose     bool
}

// exitCodeError carries the child's exit status through cobra's error return.
// It is never printed.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// run executes procshim with args. The child writes to stdout and stderr directly.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var codeErr *exitCodeError
	if errors.As(err, &codeErr) {
		// Child's status, propagated without a message
		return codeErr.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return constants.ExitSpawnFailure
}

// newRootCmd builds the command tree
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "procshim [flags] [-- command [args...]]",
		Short: "Run one child process and mirror its exit code",
		Long: `procshim starts a single child process in a fixed working directory,
forwards SIGTERM and SIGINT to it and exits with the child's status.

Without a command it runs "node server.js" in /app/backend, or whatever
procshim.yaml configures. It never restarts the child.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShim(cmd, opts, args, stdout, stderr)
		},
	}

	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "Config file")
	flags.StringVarP(&opts.dir, "dir", "C", "", "Working directory for the child")
	flags.StringVar(&opts.shell, "cmd", "", "Shell command line to run (via sh -c)")
	flags.StringVar(&opts.envFile, "env-file", "", "Env file with extra variables for the child")
	flags.DurationVar(&opts.stopTimeout, "stop-timeout", constants.DefaultStopTimeout, "Time to wait after SIGTERM before SIGKILL (0 waits forever)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate("procshim version {{.Version}}\n")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd represents the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "procshim version %s\n", Version)
		},
	}
}

// runShim resolves the configuration, enters the working directory and supervises the child
func runShim(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, opts.verbose)

	flags := cmd.Flags()
	if flags.Changed("cmd") && len(args) > 0 {
		return fmt.Errorf("%w: --cmd and a positional command are mutually exclusive", domain.ErrInvalidConfig)
	}

	// Register for signals before anything else so none is lost during startup
	signals, stopSignals := supervisor.Subscribe()
	defer stopSignals()

	cfg, err := config.LoadOrDefault(opts.configPath, flags.Changed("config"))
	if err != nil {
		return err
	}
	configDir := config.ConfigDir(opts.configPath)

	if err := applyFlags(cmd, cfg, opts, args); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	process, err := cfg.ToDomainProcess(configDir)
	if err != nil {
		return err
	}

	logger.Debug("resolved configuration",
		"config", opts.configPath,
		"dir", process.Dir,
		"argv", process.Argv(),
		"env_file", process.EnvFile,
		"stop_timeout", cfg.StopTimeout)

	if err := os.Chdir(process.Dir); err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrSpawnFailed, process.CommandLine(), err)
	}

	shimConfig := supervisor.DefaultShimConfig()
	shimConfig.StopTimeout = cfg.StopTimeout
	shimConfig.Signals = signals
	shimConfig.Logger = logger

	shim := supervisor.New(process, supervisor.NewExecRunner(stdout, stderr), shimConfig)
	result, err := shim.Run(cmd.Context())
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		return &exitCodeError{code: result.ExitCode}
	}
	return nil
}

// applyFlags layers explicitly set flags and positional args over the loaded config
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options, args []string) error {
	flags := cmd.Flags()

	// Flag paths are relative to where procshim was invoked, not the config file
	if flags.Changed("dir") {
		abs, err := filepath.Abs(opts.dir)
		if err != nil {
			return fmt.Errorf("resolving dir: %w", err)
		}
		cfg.Dir = abs
	}
	if flags.Changed("env-file") {
		abs, err := filepath.Abs(opts.envFile)
		if err != nil {
			return fmt.Errorf("resolving env file: %w", err)
		}
		cfg.EnvFile = abs
	}
	if flags.Changed("stop-timeout") {
		cfg.StopTimeout = opts.stopTimeout
	}
	if flags.Changed("cmd") {
		cfg.UseShell(opts.shell)
	}
	if len(args) > 0 {
		cfg.UseArgs(args)
	}
	return nil
}
