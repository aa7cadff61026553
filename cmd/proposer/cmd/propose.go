package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/payroll"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/config"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/logger"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/monitor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Build, sign and submit one batched payout proposal",
	Long: `Reads the payout CSV, converts each fiat amount to token units at the
current market price, encodes all transfers into a single multiSend call,
resolves the next nonce, signs the safe transaction hash with the delegate key
and posts the proposal to the transaction service.`,
	Run: func(cmd *cobra.Command, args []string) {
		csvPath, _ := cmd.Flags().GetString("csv")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		cfg := &config.Global

		payouts, err := payroll.Load(csvPath)
		if err != nil {
			fail(err)
		}

		p, err := buildPipeline(cfg)
		if err != nil {
			fail(err)
		}
		defer p.Close()
		defer pushMetrics(cfg)

		ctx := context.Background()

		if dryRun {
			result, err := p.svc.Build(ctx, payouts)
			if err != nil {
				fail(err)
			}

			fmt.Printf("Dry run: nonce %d, %d transfers, token price %s, fingerprint %s\n",
				result.Proposal.Nonce, len(result.Transfers), result.TokenPrice, result.Fingerprint)
			for i, t := range result.Transfers {
				fmt.Printf("  %3d  %s  %s\n", i+1, t.Recipient.Hex(), t.Amount.String())
			}
			return
		}

		result, err := p.svc.Propose(ctx, payouts)
		if err != nil {
			fail(err)
		}

		fmt.Println("Transaction posted to safe")
		fmt.Printf("  nonce:      %d\n", result.Proposal.Nonce)
		fmt.Printf("  safeTxHash: %s\n", result.Proposal.SafeTxHash.Hex())
		fmt.Printf("  payouts:    %d (%s total)\n", len(result.Transfers), result.TotalFiat)
	},
}

func init() {
	rootCmd.AddCommand(proposeCmd)

	proposeCmd.Flags().String("csv", "contributors-salaries.csv", "payout table path")
	proposeCmd.Flags().Bool("dry-run", false, "build and print the batch without signing or submitting")
}

// fail logs the error and terminates with a non-zero exit; per the error
// policy there is no partial success to salvage.
func fail(err error) {
	code, msg := errno.Decode(err)
	logger.Error("proposal run failed", zap.Int("code", code), zap.String("error", msg))
	logger.Sync()
	pushMetrics(&config.Global)
	os.Exit(1)
}

func pushMetrics(cfg *config.Config) {
	if cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := monitor.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
		logger.Warn("metrics push failed", zap.Error(err))
	}
}
