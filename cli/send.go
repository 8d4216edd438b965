package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cogciprocate/shoutit/domain"
	"github.com/cogciprocate/shoutit/infra/logging"
	"github.com/cogciprocate/shoutit/infra/shout"
)

func newSendCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "send [text]",
		Short: "Shout once and exit",
		Long: `Send one shout without opening the form. The text comes from the argument,
or from stdin when stdin is piped. An empty argument shouts an empty message.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := sendText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runSend(cmd, flags, text)
		},
	}
}

// sendText picks the shout text from args, falling back to piped stdin.
func sendText(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("nothing to shout: pass text or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func runSend(cmd *cobra.Command, flags *rootFlags, text string) error {
	cfg, err := clientConfig(cmd, flags)
	if err != nil {
		return err
	}
	logger := logging.Text(cmd.ErrOrStderr(), logLevel(flags))
	svc := shout.NewService(shout.NewClient(cfg.Endpoint, cfg.Timeout))

	receipt, err := svc.Shout(cmd.Context(), text)
	if err != nil {
		logger.Error("shout failed", "endpoint", cfg.Endpoint, "error", err.Error())
		if cfg.ShowErrors {
			fmt.Fprintln(cmd.OutOrStdout(), "Error: "+err.Error())
		}
		return errReported
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, domain.ShoutedText(text))
	if receipt.String() != "" {
		fmt.Fprintln(out, domain.ResponseText(receipt))
	}
	return nil
}
