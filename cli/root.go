// Package cli wires shoutit's commands: the interactive form, one-shot send,
// and the relay server.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cogciprocate/shoutit/infra/config"
	"github.com/cogciprocate/shoutit/infra/editor"
	"github.com/cogciprocate/shoutit/infra/logging"
	"github.com/cogciprocate/shoutit/infra/shout"
	"github.com/cogciprocate/shoutit/tui"
)

// errReported marks failures that were already logged; Execute only sets the
// exit code for them.
var errReported = errors.New("already reported")

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("shoutit %s\ncommit: %s\nbuilt: %s", b.Version, b.Commit, b.Date)
}

type rootFlags struct {
	endpoint   string
	showErrors bool
	logFile    string
	debug      bool
	version    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "shoutit",
		Short: "Shout a message to everyone subscribed",
		Long: `shoutit sends a short text message to the shout service, which pushes it
to every subscribed device.

Examples:
  shoutit                         Open the shout form
  shoutit send "lunch is here"    Shout once and exit
  echo "deploy done" | shoutit send
  shoutit serve                   Run the relay server`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.version {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}
			return runForm(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.endpoint, "endpoint", "", "Shout endpoint URL (default "+config.DefaultEndpoint+")")
	pf.BoolVar(&flags.showErrors, "show-errors", false, "Show failed shouts instead of only logging them")
	pf.StringVar(&flags.logFile, "log-file", "", "Diagnostic log file for the form")
	pf.BoolVar(&flags.debug, "debug", false, "Log debug records")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version and exit")

	cmd.AddCommand(newSendCmd(&flags))
	cmd.AddCommand(newServeCmd(&flags))
	cmd.AddCommand(newVersionCmd(info))
	return cmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(info BuildInfo) {
	if err := NewRootCmd(info).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "shoutit: %v\n", err)
		}
		os.Exit(1)
	}
}

// clientConfig loads env configuration, then applies flags that were set.
func clientConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if cmd.Flags().Changed("endpoint") {
		endpoint, err := config.NormalizeEndpoint(flags.endpoint)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --endpoint: %w", err)
		}
		cfg.Endpoint = endpoint
	}
	if cmd.Flags().Changed("show-errors") {
		cfg.ShowErrors = flags.showErrors
	}
	if flags.logFile != "" {
		cfg.LogPath = flags.logFile
	}
	return cfg, nil
}

func logLevel(flags *rootFlags) slog.Level {
	if flags.debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
}

// runForm opens the interactive shout form.
func runForm(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := clientConfig(cmd, &flags)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.File(cfg.LogPath, logLevel(&flags))
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	model := tui.NewApp(ctx, tui.Deps{
		Shout:      shout.NewService(shout.NewClient(cfg.Endpoint, cfg.Timeout)),
		Editor:     editor.NewEnvEditor(),
		Logger:     logger,
		Endpoint:   cfg.Endpoint,
		ShowErrors: cfg.ShowErrors,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}

