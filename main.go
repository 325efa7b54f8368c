package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dummyapi/app/logging"
	"dummyapi/app/metrics"
	"dummyapi/app/models"
	"dummyapi/app/repositories"
	"dummyapi/app/routes"
	"dummyapi/app/server"
	"dummyapi/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const CliVersion = "1.0.0"

// Default location of the benchmark run store
const defaultDBPath = "data/runs"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the CLI and exits non-zero when a command fails.
func RealMain() {
	if err := newRootCmd().Execute(); err != nil {
		exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr, logFile string

	rootCmd := &cobra.Command{
		Use:   "dummyapi",
		Short: "dummyapi is a dummy REST server for benchmarking HTTP verbs",
		Long: `A dummy REST server exposing a single "posts" resource.
GET returns canned posts, POST and PUT echo the JSON body, DELETE answers 204.
Running dummyapi without a command starts the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file, rotated by size, instead of stderr.")
	rootCmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "The address to listen on.")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dummy API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logFile)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "The address to listen on.")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dummyapi version %s\n", CliVersion)
		},
	}

	rootCmd.AddCommand(serveCmd, newBenchCmd(&logFile), newHistoryCmd(), newStoreCmd(), versionCmd)
	return rootCmd
}

func runServe(addr, logFile string) error {
	closer := logging.Setup(logFile)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, addr, routes.SetupRoutes())
}

func newBenchCmd(logFile *string) *cobra.Command {
	var (
		config    models.BenchConfig
		outputDir string
		dbPath    string
	)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark a REST endpoint, typically this server",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			closer := logging.Setup(*logFile)
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var runRepo repositories.RunRepository
			if dbPath != "" {
				db, err := repositories.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				runRepo = repositories.NewBadgerRunRepository(db)
			}

			report, err := services.NewBenchService(runRepo, nil).Execute(ctx, config, outputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			metrics.Print(out, report.Run.Metrics)
			fmt.Fprintf(out, "Completed in %s\n", report.Run.Elapsed.Round(time.Millisecond))
			if report.Run.ID != 0 {
				fmt.Fprintf(out, "Stored as run %d\n", report.Run.ID)
			}
			for _, path := range report.Files {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	flags := benchCmd.Flags()
	flags.StringVarP(&config.URL, "url", "u", "", "The URL of the API endpoint to benchmark.")
	flags.StringVarP(&config.Method, "method", "m", "GET", "The HTTP method to use. Accepted methods: GET, POST, PUT, DELETE")
	flags.IntVarP(&config.Requests, "requests", "r", 10000, "The number of requests to perform.")
	flags.IntVarP(&config.Concurrency, "concurrency", "c", 1000, "The level of concurrency for the requests.")
	flags.IntVarP(&config.Duration, "duration", "d", 10, "The duration of the test in seconds.")
	flags.StringVarP(&config.Body, "body", "b", "", "The JSON request body for POST/PUT requests. Prefix with @ to point to a file.")
	flags.DurationVar(&config.Timeout, "timeout", models.DefaultRequestTimeout, "The timeout of a single request.")
	flags.StringVarP(&outputDir, "output", "o", "./output", "Directory for JSON result files and the HTML report. Empty disables the export.")
	flags.StringVar(&dbPath, "db", defaultDBPath, "Path of the run store. Empty disables storing the run.")

	return benchCmd
}

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
		offset int
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List stored benchmark runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repositories.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := services.NewBenchService(repositories.NewBadgerRunRepository(db), nil).History(limit, offset)
			if err != nil {
				return err
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	historyCmd.Flags().StringVar(&dbPath, "db", defaultDBPath, "Path of the run store.")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "The number of runs to list.")
	historyCmd.Flags().IntVar(&offset, "offset", 0, "The number of runs to skip.")

	return historyCmd
}

func newStoreCmd() *cobra.Command {
	var dbPath string

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Maintain the benchmark run store",
	}
	storeCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath, "Path of the run store.")

	withStore := func(fn func(cmd *cobra.Command, db *badger.DB, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := repositories.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(cmd, db, args)
		}
	}

	backupCmd := &cobra.Command{
		Use:   "backup <file>",
		Short: "Write a backup of the run store",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, db *badger.DB, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := repositories.Backup(db, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run store backed up successfully to %s\n", args[0])
			return nil
		}),
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the run store from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, db *badger.DB, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			if err := repositories.Restore(db, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Run store restored successfully")
			return nil
		}),
	}

	var yes bool
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove every stored run",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, db *badger.DB, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprint(out, "Are you sure you want to clean the run store? This cannot be undone. [y/N] ")
				var response string
				fmt.Fscanln(cmd.InOrStdin(), &response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
			}

			if err := repositories.Clean(db); err != nil {
				return err
			}
			fmt.Fprintln(out, "Run store cleaned successfully")
			return nil
		}),
	}
	cleanCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	storeCmd.AddCommand(backupCmd, restoreCmd, cleanCmd)
	return storeCmd
}

func printRuns(w io.Writer, runs []*models.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No benchmark runs stored")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Started", "Method", "URL", "Requests", "Success", "Avg"})
	table.SetAutoWrapText(false)
	for _, run := range runs {
		table.Append([]string{
			strconv.Itoa(run.ID),
			run.StartedAt.Format(time.RFC3339),
			run.Config.Method,
			run.Config.URL,
			strconv.Itoa(run.Metrics.TotalRequests),
			fmt.Sprintf("%.2f%%", run.Metrics.SuccessRate),
			run.Metrics.AverageResponse.String(),
		})
	}
	table.Render()
}
