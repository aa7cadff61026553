package cmd

import (
	"fmt"
	"os"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/config"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/logger"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/monitor"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "proposer",
	Short: "Batched salary proposals for a Gnosis Safe",
	Long: `Converts a fiat-denominated payout list into one batched token
transfer, signs its safe transaction hash with a delegate key and submits the
proposal to the Safe transaction service for co-signature.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
		logger.Init(config.Global.App.Env)
		monitor.Init()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
