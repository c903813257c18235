package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio backend: static site and contact form relay",
		Long: `folio serves a portfolio site and relays its contact form to your inbox.

Available subcommands:
  serve - Run the HTTP server (POST /api/contact, health probes, static site)
  send  - Submit a contact message to a running server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newSendCmd())
	return root
}
