package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/config"
	"github.com/prabaj-wq/accessgov/pkg/db"
	"github.com/prabaj-wq/accessgov/pkg/notify"
	"github.com/prabaj-wq/accessgov/pkg/risk"
	gormstore "github.com/prabaj-wq/accessgov/pkg/server/store/gorm"
	"github.com/prabaj-wq/accessgov/pkg/workflow"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Escalate overdue access requests once",
	Long: `Escalate overdue access requests once and exit.

The running server performs this sweep on its configured schedule; this
command exists for cron-driven deployments and for operators forcing a
sweep by hand.

Example:
  govctl sweep`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSweep(); err != nil {
			fmt.Fprintln(os.Stderr, "Sweep failed:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep() error {
	conn, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	cfg := config.Get()
	resolver, err := buildResolver(cfg)
	if err != nil {
		return err
	}

	engine := workflow.NewEngine(
		gormstore.NewRequestsStore(conn),
		gormstore.NewCatalogStore(conn),
		resolver,
		notify.LogNotifier{},
		func() risk.Policy { return config.Get().RiskPolicy() },
	)

	results := engine.SweepOverdue(cfg.DueSoonWindow())
	escalated := 0
	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("escalate %s failed: %v\n", result.RequestID, result.Err)
			continue
		}
		escalated++
		fmt.Printf("escalated %s\n", result.RequestID)
	}
	fmt.Printf("Escalated %d overdue request(s)\n", escalated)
	return nil
}

// recomputeCmd represents the compliance recompute command
var recomputeCmd = &cobra.Command{
	Use:   "recompute [framework]",
	Short: "Recompute compliance metrics",
	Long: `Recompute the compliance metric for one framework, or for every
framework violations exist for when no framework is given.

Example:
  govctl recompute
  govctl recompute SOX`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRecompute(cmd, args); err != nil {
			fmt.Fprintln(os.Stderr, "Recompute failed:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
}

func runRecompute(cmd *cobra.Command, args []string) error {
	conn, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	aggregator := compliance.NewAggregator(
		gormstore.NewViolationsStore(conn),
		gormstore.NewMetricsStore(conn),
		func() compliance.Policy { return config.Get().CompliancePolicy() },
	)

	ctx := cmd.Context()
	if len(args) > 0 {
		metric, err := aggregator.Recompute(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: score=%.1f status=%s trend=%s violations=%d\n",
			metric.Framework, metric.Score, metric.Status, metric.Trend, metric.ViolationCount)
		return nil
	}

	metrics, err := aggregator.RecomputeAll(ctx)
	if err != nil {
		return err
	}
	for _, metric := range metrics {
		fmt.Printf("%s: score=%.1f status=%s trend=%s violations=%d\n",
			metric.Framework, metric.Score, metric.Status, metric.Trend, metric.ViolationCount)
	}
	return nil
}
