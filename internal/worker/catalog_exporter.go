package worker

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/picker"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
)

// neutralSentiment is used until events carry review scores
const neutralSentiment = 0.5

// CatalogExporter periodically writes the published events out as the
// candidate catalog read by the decision procedure.
type CatalogExporter struct {
	events   event.Repository
	schedule string
	path     string
	logger   *logger.Logger

	mu        sync.Mutex
	scheduler *cron.Cron
}

// NewCatalogExporter creates a new catalog export worker
func NewCatalogExporter(events event.Repository, cfg config.CatalogConfig, log *logger.Logger) *CatalogExporter {
	return &CatalogExporter{
		events:   events,
		schedule: cfg.Schedule,
		path:     cfg.Path,
		logger:   log,
	}
}

// Start runs one export immediately and then on the configured schedule
// until ctx is cancelled.
func (c *CatalogExporter) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scheduler != nil {
		return fmt.Errorf("catalog exporter is already running")
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(c.schedule, func() { c.run(ctx) }); err != nil {
		return fmt.Errorf("invalid catalog export schedule %q: %w", c.schedule, err)
	}

	c.run(ctx)

	scheduler.Start()
	c.scheduler = scheduler

	c.logger.WithFields(map[string]interface{}{
		"schedule": c.schedule,
		"path":     c.path,
	}).Info("Catalog exporter started")

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running export to finish
func (c *CatalogExporter) Stop() {
	c.mu.Lock()
	scheduler := c.scheduler
	c.scheduler = nil
	c.mu.Unlock()

	if scheduler == nil {
		return
	}
	<-scheduler.Stop().Done()
	c.logger.Info("Catalog exporter stopped")
}

func (c *CatalogExporter) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := c.Export(ctx)
	if err != nil {
		metrics.RecordCatalogExport("error", 0)
		c.logger.ErrorWithErr(err, "Failed to export candidate catalog")
		return
	}
	metrics.RecordCatalogExport("success", n)
	c.logger.WithFields(map[string]interface{}{
		"candidates": n,
	}).Debug("Candidate catalog exported")
}

// Export writes the current catalog and returns the number of candidates.
// The file is replaced atomically so a running decision procedure never
// sees a partial catalog.
func (c *CatalogExporter) Export(ctx context.Context) (int, error) {
	events, err := c.events.List(ctx, event.Filter{})
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}

	candidates := Candidates(events)

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.csv")
	if err != nil {
		return 0, fmt.Errorf("create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := picker.WriteCatalog(tmp, candidates); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return 0, fmt.Errorf("replace catalog: %w", err)
	}

	return len(candidates), nil
}

// Candidates maps events onto catalog rows. Popularity is the like count
// scaled to a whole number in 0..10 against the most liked event.
func Candidates(events []*event.Event) []picker.Candidate {
	maxLikes := 0
	for _, e := range events {
		if e.Likes > maxLikes {
			maxLikes = e.Likes
		}
	}

	out := make([]picker.Candidate, 0, len(events))
	for _, e := range events {
		name := strings.TrimSpace(e.Title)
		if name == "" {
			continue
		}

		kind := strings.TrimSpace(e.Category)
		if kind == "" {
			kind = "General"
		}

		cost := e.EstimatedCost
		if cost == 0 {
			cost = e.TicketPrice
		}

		popularity := 0
		if maxLikes > 0 {
			popularity = int(math.Round(10 * float64(e.Likes) / float64(maxLikes)))
		}

		out = append(out, picker.Candidate{
			Event:      name,
			Type:       kind,
			Cost:       cost,
			Popularity: popularity,
			Sentiment:  neutralSentiment,
			Reviews:    len(e.Comments),
		})
	}
	return out
}
