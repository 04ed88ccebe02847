package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vibespecs/vibespecs/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = vibespecsApp.Config.Server.Addr
		}

		var generator api.Generator
		if vibespecsApp.Gateway != nil {
			generator = vibespecsApp.Gateway
		}
		var prdStore api.PRDStore
		if vibespecsApp.Store != nil {
			prdStore = vibespecsApp.Store
		}

		server := api.NewServer(generator, prdStore)
		return server.Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to config)")
	rootCmd.AddCommand(serveCmd)
}
