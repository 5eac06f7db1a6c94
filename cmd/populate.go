package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"storeseed/internal/backend"
	"storeseed/internal/config"
	"storeseed/internal/gen"
	"storeseed/internal/seeder"
)

var (
	populateUsers    int
	populateProducts int
	populateOrders   int
	populateBatch    int
	populateSeed     int64
	populateTruncate bool
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Generate and insert fake users, products and orders",
	Long: `Generate synthetic records and insert them into the configured
backend in fixed-size batches: users first, then products, then orders
referencing the ids assigned to the first two stages.

Counts and batch size come from the config file and can be overridden
per run with flags. Pass --seed for a reproducible run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		b, err := backend.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open backend: %w", err)
		}
		defer b.Close()

		color.Cyan("🌱 Starting database population...")

		s := seeder.New(b, gen.New(populateSeed))
		report, err := s.Run(ctx, seeder.Options{
			Users:    cfg.Populate.Users,
			Products: cfg.Populate.Products,
			Orders:   cfg.Populate.Orders,
			Batch:    cfg.Populate.Batch,
			Truncate: populateTruncate,
		})
		printSummary(report)
		if err != nil {
			color.Red("❌ CRITICAL: %v", err)
			return err
		}

		color.Green("\n✅ Database population finished")
		return nil
	},
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("users") {
		cfg.Populate.Users = populateUsers
	}
	if cmd.Flags().Changed("products") {
		cfg.Populate.Products = populateProducts
	}
	if cmd.Flags().Changed("orders") {
		cfg.Populate.Orders = populateOrders
	}
	if cmd.Flags().Changed("batch") {
		cfg.Populate.Batch = populateBatch
	}
}

func printSummary(report *seeder.Report) {
	if report == nil || len(report.Stages) == 0 {
		return
	}
	fmt.Println()
	color.Cyan("📊 Summary")
	for _, stage := range report.Stages {
		line := fmt.Sprintf("  %-10s generated %5d, confirmed %5d", stage.Collection, stage.Generated, stage.Confirmed)
		if failed := stage.Failed(); failed > 0 {
			color.Yellow("%s (%d failed batches)", line, failed)
		} else {
			color.Green("%s", line)
		}
	}
}

func init() {
	rootCmd.AddCommand(populateCmd)
	populateCmd.Flags().IntVar(&populateUsers, "users", 200, "Number of users to generate")
	populateCmd.Flags().IntVar(&populateProducts, "products", 500, "Number of products to generate")
	populateCmd.Flags().IntVar(&populateOrders, "orders", 2500, "Number of orders to generate")
	populateCmd.Flags().IntVar(&populateBatch, "batch", 100, "Records per insert call")
	populateCmd.Flags().Int64Var(&populateSeed, "seed", 0, "Random seed for reproducible runs (0 = random)")
	populateCmd.Flags().BoolVar(&populateTruncate, "truncate", false, "Clear collections before seeding")
}
