package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	gorm "gorm.io/gorm"

	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/config"
	"github.com/prabaj-wq/accessgov/pkg/db"
	"github.com/prabaj-wq/accessgov/pkg/directory"
	"github.com/prabaj-wq/accessgov/pkg/notify"
	"github.com/prabaj-wq/accessgov/pkg/risk"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/endpoints"
	gormstore "github.com/prabaj-wq/accessgov/pkg/server/store/gorm"
	"github.com/prabaj-wq/accessgov/pkg/server/store/memory"
	"github.com/prabaj-wq/accessgov/pkg/workflow"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the access governance server",
	Long: `Run the access governance server.

Running against PostgreSQL requires the DATABASE_URL environment variable.
Use --memory to run entirely in process memory instead, for development.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		useMemory, _ := cmd.Flags().GetBool("memory")

		var stores server.Stores
		var gormDB *gorm.DB

		if useMemory {
			mem := memory.NewStore()
			stores = server.Stores{
				Catalog:    mem,
				Grants:     mem,
				Requests:   mem,
				Violations: mem,
				Metrics:    mem,
				Health:     mem,
			}
		} else {
			if os.Getenv("DATABASE_URL") == "" {
				fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
				os.Exit(1)
			}

			noMigrate, _ := cmd.Flags().GetBool("no-migrate")
			if !noMigrate {
				log.Println("Running database migrations...")
				if err := runMigrations(); err != nil {
					fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
					os.Exit(1)
				}
			}

			conn, err := db.Connect(db.Config{})
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
				os.Exit(1)
			}
			gormDB = conn
			stores = server.Stores{
				Catalog:    gormstore.NewCatalogStore(conn),
				Grants:     gormstore.NewGrantsStore(conn),
				Requests:   gormstore.NewRequestsStore(conn),
				Violations: gormstore.NewViolationsStore(conn),
				Metrics:    gormstore.NewMetricsStore(conn),
				Health:     gormstore.NewHealthStore(conn),
			}
		}

		cfg := config.Get()

		resolver, err := buildResolver(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to load approver chains:", err)
			os.Exit(1)
		}

		engine := workflow.NewEngine(
			stores.Requests,
			stores.Catalog,
			resolver,
			notify.LogNotifier{},
			func() risk.Policy { return config.Get().RiskPolicy() },
		)
		aggregator := compliance.NewAggregator(
			stores.Violations,
			stores.Metrics,
			func() compliance.Policy { return config.Get().CompliancePolicy() },
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := config.Watch(ctx); err != nil {
			log.Printf("config watch disabled: %v", err)
		}

		sweeper := cron.New()
		_, err = sweeper.AddFunc(cfg.EscalationSchedule, func() {
			results := engine.SweepOverdue(config.Get().DueSoonWindow())
			for _, result := range results {
				if result.Err != nil {
					log.Printf("sweep: escalate %s failed: %v", result.RequestID, result.Err)
				}
			}
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad escalation schedule:", err)
			os.Exit(1)
		}
		sweeper.Start()
		defer sweeper.Stop()

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(stores, engine, aggregator, cfg, gormDB, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

// buildResolver loads the approver chain mapping, falling back to a single
// administrator chain when none is configured.
func buildResolver(cfg *config.GovConfig) (directory.Resolver, error) {
	if cfg.ApproverChainsPath != "" {
		return directory.LoadStaticResolver(cfg.ApproverChainsPath)
	}
	return directory.NewStaticResolver(map[string][]directory.Approver{
		"default": {{Identity: "governance-admin", Role: "administrator"}},
	}), nil
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("memory", false, "run with the in-memory backend instead of PostgreSQL")
}
