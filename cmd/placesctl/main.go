// Command placesctl is a terminal client for the places proxy.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"places-proxy/internal/autocomplete"
	"places-proxy/internal/gateway"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const proxyEnv = "PLACES_PROXY_URL"

type options struct {
	proxy   string
	timeout time.Duration
	verbose bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "placesctl",
		Short: "Search places and manage saved markers through the places proxy",
		Long: `placesctl talks to a running places proxy.

Examples:
  placesctl health
  placesctl search "Pizza Hut"
  placesctl markers add -- 43.65 -79.38 "Pizza Hut Toronto"
  placesctl interactive --proxy http://localhost:5050
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.proxy, "proxy", os.Getenv(proxyEnv), "Places proxy base URL (default $"+proxyEnv+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", autocomplete.DefaultRequestTimeout, "Per-request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(healthCmd(opts))
	cmd.AddCommand(markersCmd(opts))
	cmd.AddCommand(ingestCmd(opts))
	cmd.AddCommand(searchCmd(opts))
	cmd.AddCommand(interactiveCmd(opts))

	return cmd
}

func (o *options) client() *gateway.Client {
	return gateway.New(gateway.Config{BaseURL: o.proxy, Timeout: o.timeout})
}

func (o *options) coordinator(gw *gateway.Client, coordOpts ...autocomplete.Option) *autocomplete.Coordinator {
	coordOpts = append([]autocomplete.Option{autocomplete.WithRequestTimeout(o.timeout)}, coordOpts...)
	return autocomplete.New(gw, gw, coordOpts...)
}

// alertError renders err the way the interactive screen shows it.
func alertError(err error) error {
	a := autocomplete.AlertFor(err)
	return fmt.Errorf("%s: %s", a.Title, a.Message)
}

func healthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the proxy is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := opts.client()
			if !gw.Configured() {
				return alertError(gateway.ErrNotConfigured)
			}
			c := opts.coordinator(gw)
			defer c.Close()

			health := c.CheckHealth(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "proxy %s: %s\n", opts.proxy, health)
			if health != autocomplete.HealthOK {
				return fmt.Errorf("proxy is not healthy")
			}
			return nil
		},
	}
}

func ingestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest URL",
		Short: "Submit a shared link to the proxy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.client().IngestLink(cmd.Context(), args[0])
			a := autocomplete.LinkAlert(err)
			if err != nil {
				return fmt.Errorf("%s: %s", a.Title, a.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.Title, a.Message)
			return nil
		},
	}
}

func searchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Resolve the best match for QUERY and save it as a marker",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.coordinator(opts.client())
			defer c.Close()

			c.SetQuery(joinArgs(args))
			loc, err := c.Submit(cmd.Context())
			if err != nil {
				return alertError(err)
			}
			printLocation(cmd.OutOrStdout(), loc)
			return nil
		},
	}
}
