package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cogciprocate/shoutit/infra/auth"
	"github.com/cogciprocate/shoutit/infra/config"
	"github.com/cogciprocate/shoutit/infra/logging"
	"github.com/cogciprocate/shoutit/infra/onesignal"
	"github.com/cogciprocate/shoutit/infra/relay"
)

// shutdownGrace is how long in-flight shouts get once a signal arrives.
const shutdownGrace = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	var configPath, listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay that pushes shouts to subscribed devices",
		Long: `Run the shout relay. POST {"message": "..."} to /shout and the relay pushes
it to every OneSignal subscriber.

Configuration is read from ~/.config/shoutit/relay.toml:

  app_id = "YOUR_APP_ID"
  rest_api_key = "YOUR_REST_API_KEY"   # or rest_api_key_file = "/path/to/key"
  listen = ":8080"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				p, err := config.DefaultRelayPath()
				if err != nil {
					return err
				}
				configPath = p
			}
			cfg, err := config.LoadRelay(configPath)
			if err != nil {
				return fmt.Errorf("relay config: %w", err)
			}
			if listen != "" {
				cfg.Listen = listen
			}

			logger := logging.JSON(cmd.OutOrStdout(), logLevel(flags))
			keys := auth.NewKeyProvider(cfg.RESTAPIKey, cfg.RESTAPIKeyFile)
			if _, err := keys.APIKey(); err != nil {
				return fmt.Errorf("relay config: %w", err)
			}

			srv := relay.NewServer(onesignal.NewClient(cfg.OneSignalURL, cfg.AppID, keys, logger), logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, cfg.Listen, shutdownGrace)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Relay config file (default ~/.config/shoutit/relay.toml)")
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address, overrides the config file")
	return cmd
}
