package cmd

import (
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/handler"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/server"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the proposal pipeline as an HTTP service",
	Long: `Exposes the pipeline behind POST /api/v1/proposals so payout runs can
be triggered remotely, plus proposal history, health and metrics endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &config.Global

		p, err := buildPipeline(cfg)
		if err != nil {
			fail(err)
		}
		defer p.Close()

		proposals := handler.NewProposalHandler(p.svc, p.store, p.safeAddr)
		router := server.NewHTTPRouter(proposals)

		app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, router)
		app.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
