package picker

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CatalogHeader is the column order of the candidate catalog CSV
var CatalogHeader = []string{"Event", "Type", "Cost", "Popularity", "Avg_Sentiment", "Review_Count"}

// Candidate is one row of the catalog
type Candidate struct {
	Event      string
	Type       string
	Cost       float64
	Popularity int     // 0-10
	Sentiment  float64 // 0-1
	Reviews    int
}

// ReadCatalog parses a catalog CSV. Columns are matched by header name so
// extra columns are ignored. Rows without an event name are skipped.
func ReadCatalog(r io.Reader) ([]Candidate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{"Event", "Cost"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("catalog is missing the %s column", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []Candidate
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog line %d: %w", line, err)
		}

		name := field(rec, "Event")
		if name == "" {
			continue
		}
		out = append(out, Candidate{
			Event:      name,
			Type:       field(rec, "Type"),
			Cost:       parseAmount(field(rec, "Cost")),
			Popularity: int(math.Round(clamp(parseAmount(field(rec, "Popularity")), 0, 10))),
			Sentiment:  clamp(parseAmount(field(rec, "Avg_Sentiment")), 0, 1),
			Reviews:    int(parseAmount(field(rec, "Review_Count"))),
		})
	}
	return out, nil
}

// LoadCatalog reads the catalog file at path
func LoadCatalog(path string) ([]Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCatalog(f)
}

// WriteCatalog writes candidates as a catalog CSV
func WriteCatalog(w io.Writer, candidates []Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CatalogHeader); err != nil {
		return err
	}
	for _, c := range candidates {
		if err := cw.Write([]string{
			c.Event,
			c.Type,
			strconv.FormatFloat(c.Cost, 'f', -1, 64),
			strconv.Itoa(c.Popularity),
			strconv.FormatFloat(c.Sentiment, 'f', 2, 64),
			strconv.Itoa(c.Reviews),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseAmount reads "12,500" style numbers; anything unparsable is zero
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v != v {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
