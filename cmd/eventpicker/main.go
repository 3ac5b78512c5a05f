// Command eventpicker is the decision procedure behind the recommendation
// endpoint. It takes one JSON request as its only argument, reads
// catalog.csv from the working directory and prints the result as JSON.
// Failures go to stderr with a non-zero exit status.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/picker"
	"github.com/festhub/eventhub/internal/pkg/logger"
)

const defaultCatalog = "catalog.csv"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	log := logger.NewWithWriter(logger.Config{Level: envOr(getenv, "EVENTPICKER_LOG_LEVEL", "warn"), Format: "console"}, stderr)

	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: eventpicker '<json request>'")
		return 2
	}

	var req recommendation.Request
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		fmt.Fprintf(stderr, "invalid request: %v\n", err)
		return 1
	}
	if req.Budget <= 0 {
		fmt.Fprintln(stderr, "invalid request: budget must be a positive number")
		return 1
	}

	catalogPath := envOr(getenv, "EVENTPICKER_CATALOG", defaultCatalog)
	catalog, err := picker.LoadCatalog(catalogPath)
	if err != nil {
		fmt.Fprintf(stderr, "load catalog %s: %v\n", catalogPath, err)
		return 1
	}

	var explainer picker.Explainer
	if key := getenv("OPENAI_API_KEY"); key != "" {
		explainer = picker.NewOpenAIExplainer(key, getenv("OPENAI_MODEL"))
	}

	log.WithFields(map[string]interface{}{
		"catalog":    catalogPath,
		"candidates": len(catalog),
		"budget":     req.Budget,
		"openai":     explainer != nil,
	}).Debug("Picking events")

	sel, empty, err := picker.New(catalog, explainer).Pick(ctx, &req)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var out interface{} = empty
	if sel != nil {
		out = sel
	}
	if err := json.NewEncoder(stdout).Encode(out); err != nil {
		fmt.Fprintf(stderr, "write result: %v\n", err)
		return 1
	}
	return 0
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
