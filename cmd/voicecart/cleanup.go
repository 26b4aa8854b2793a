package main

import (
	"fmt"

	"github.com/spf13/cobra"

	orderrepo "github.com/kailas-cloud/voicecart/internal/repository/order"
	"github.com/kailas-cloud/voicecart/internal/usecase/maintenance"
)

var cleanupOpts maintenance.CleanupOptions

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove the catalog index, products and orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := a.signalContext()
		defer stop()

		svc := maintenance.New(newProductRepo(&a.cfg, a.store), orderrepo.New(a.store), nil, a.cfg.Embedding.Dimensions)
		report, err := svc.Cleanup(ctx, cleanupOpts)
		if err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cleanupSummary(&report))
		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupOpts.DryRun, "dry-run", false, "report what would be removed")
	cleanupCmd.Flags().BoolVar(&cleanupOpts.Force, "force", false, "actually remove data")
}
