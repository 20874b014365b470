package main

import (
	"datajournal/internal/handlers"
	"datajournal/internal/parser"
	"datajournal/internal/storage"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

type config struct {
	port     string
	dataDir  string
	dataPath string
	method   string
	strict   bool
	pbHTTP   string
}

// envOr returns the environment variable or a default
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	strictDefault, _ := strconv.ParseBool(os.Getenv("STRICT_PARSE"))
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "datajournal",
		Short: "Serve an interactive scatter chart of state health and demographic data",
		Long: "Loads the state dataset, keeps it in an embedded PocketBase store and serves\n" +
			"the scatter chart with switchable axes over HTTP.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.port, "port", envOr("PORT", "8080"), "HTTP port (env PORT)")
	flags.StringVar(&cfg.dataDir, "dir", envOr("DATA_DIR", "./pb_data"), "PocketBase data directory (env DATA_DIR)")
	flags.StringVar(&cfg.dataPath, "data", envOr("DATA_PATH", "assets/data/data.csv"), "dataset path or URL (env DATA_PATH)")
	flags.StringVar(&cfg.method, "method", envOr("PARSE_METHOD", "csv"), "parse method: csv or zip (env PARSE_METHOD)")
	flags.BoolVar(&cfg.strict, "strict", strictDefault, "fail the load on non-numeric values instead of plotting NaN (env STRICT_PARSE)")
	flags.StringVar(&cfg.pbHTTP, "pb-http", os.Getenv("PB_HTTP"), "address for the PocketBase admin UI, empty to disable (env PB_HTTP)")

	return cmd
}

func run(cmd *cobra.Command, cfg *config) error {
	// Ensure data directory exists
	if err := os.MkdirAll(cfg.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewPocketBaseStore(cfg.dataDir, cfg.pbHTTP)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	manager, err := parser.NewParserManager(cfg.strict)
	if err != nil {
		return fmt.Errorf("failed to initialize parser manager: %w", err)
	}
	defer manager.Cleanup()

	chartHandler := handlers.NewChartHandler(store, manager, cfg.method, cfg.dataPath)

	// A failed load leaves the page without a chart; POST /api/reload retries.
	if err := chartHandler.Load(cmd.Context()); err != nil {
		log.Printf("Error loading dataset: %v", err)
	}

	mux := http.NewServeMux()
	chartHandler.Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("Server starting on :%s...", cfg.port)
	return http.ListenAndServe(":"+cfg.port, mux)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
