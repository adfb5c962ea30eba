package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	fsAdapter "github.com/bft-labs/rockpapershock/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/rockpapershock/internal/adapters/http"
	logAdapter "github.com/bft-labs/rockpapershock/internal/adapters/log"
	"github.com/bft-labs/rockpapershock/internal/app"
	"github.com/bft-labs/rockpapershock/internal/cliconfig"
	"github.com/bft-labs/rockpapershock/internal/ports"
)

const helpDescription = `
Play rock-paper-scissors against your OpenShock device.

  Win:  the device vibrates (intensity 100, 1s).
  Lose: the device shocks (intensity 50, 1s).
  Tie:  nothing happens.

Credentials come from SHOCK_API_KEY and SHOCK_ID, read from flags, the
environment, a .env file next to the binary, or ~/.rockpapershock/config.toml.
`

var exampleUsage = strings.TrimSpace(`
  rockpapershock
  rockpapershock --env-file ./secrets.env
  rockpapershock --api-token <token> --device-id <shocker-id> --log-level info
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		log := logAdapter.NewConsoleLogger(stderr, zerolog.ErrorLevel)
		log.Error().Err(err).Msg("rockpapershock")
		return 1
	}
	return 0
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "rockpapershock",
		Short:         "Rock-paper-scissors with real consequences",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			src, err := cliconfig.Load(&cfg, cfgPath, changed)
			if err != nil {
				return err
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			log := logAdapter.NewZerologAdapterWithLogger(logAdapter.NewConsoleLogger(stderr, level))

			log.Debug("configuration",
				ports.Any("credentials", cfg.Credentials().Masked()),
				ports.String("service_url", cfg.ServiceURL),
				ports.Duration("timeout", cfg.HTTPTimeout),
				ports.String("config_file", src.ConfigFile),
				ports.String("env_file", src.EnvFile),
			)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// A blocked console read cannot observe ctx, so the first signal
			// ends the process directly.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					cancel()
					log.Info("received signal, stopping")
					fmt.Fprintln(stdout, "\nThanks for playing!")
					os.Exit(130)
				case <-ctx.Done():
				}
			}()

			if cfg.WatchConfig {
				watcher := fsAdapter.NewConfigWatcher(log, nil, src.ConfigFile, src.EnvFile)
				if err := watcher.Start(ctx); err != nil {
					log.Warn("config watcher disabled", ports.Err(err))
				} else {
					defer watcher.Stop()
				}
			}

			controller := httpAdapter.NewController(
				&http.Client{Timeout: cfg.HTTPTimeout},
				log,
				cfg.ServiceURL,
				cfg.CustomName,
			)

			session := app.NewSession(app.SessionConfig{
				Credentials: cfg.Credentials(),
				Device:      controller,
				Logger:      log,
				In:          stdin,
				Out:         stdout,
			})

			if _, err := session.Run(ctx); err != nil {
				return fmt.Errorf("session: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rockpapershock/config.toml)")
	root.Flags().StringVar(&cfg.EnvFile, "env-file", "", "path to .env file (default: .env next to the binary, then ./.env)")
	root.Flags().StringVar(&cfg.APIToken, "api-token", "", "OpenShock API token (prefer SHOCK_API_KEY)")
	root.Flags().StringVar(&cfg.DeviceID, "device-id", "", "target shocker id (SHOCK_ID)")

	root.Flags().StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "control API base URL (override only for testing)")
	if err := root.Flags().MarkHidden("service-url"); err != nil {
		fmt.Fprintf(stderr, "failed to hide service-url flag: %v\n", err)
	}
	root.Flags().StringVar(&cfg.CustomName, "custom-name", cfg.CustomName, "client name reported to the control API")
	if err := root.Flags().MarkHidden("custom-name"); err != nil {
		fmt.Fprintf(stderr, "failed to hide custom-name flag: %v\n", err)
	}

	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout for device commands")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "warn when config or .env files change during play")

	return root
}
