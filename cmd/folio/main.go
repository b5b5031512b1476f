// Command folio runs the portfolio server and a few maintenance commands
// against the content API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := newSettings()
	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio and blog server",
		Long: `folio serves a portfolio and blog whose records live behind a REST content API.

Configuration is read from folio.yaml (or --config), then FOLIO_* environment
variables, then flags; later sources win.

Examples:
  folio init mysite
  folio serve --addr :8080
  folio list projects
  folio seed seed.yaml --email admin@example.com --password secret`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load()
		},
	}

	root.PersistentFlags().StringVar(&s.cfgFile, "config", "", "config file (default ./folio.yaml)")
	root.PersistentFlags().String("api-url", "", "content API base URL")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = s.v.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))
	_ = s.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newServeCmd(s),
		newListCmd(s),
		newSeedCmd(s),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}
