package azkar

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/zikrhub/backend/internal/models"
)

// Catalog is the static zekr reference catalogue, loaded once at process
// start. The core only needs id identity; the text is served back to clients
// as-is.
type Catalog struct {
	byID  map[int]models.Zekr
	items []models.Zekr
}

// NewCatalog builds a Catalog from already-materialized items.
func NewCatalog(items []models.Zekr) *Catalog {
	catalog := &Catalog{byID: make(map[int]models.Zekr, len(items))}
	for _, zekr := range items {
		catalog.byID[zekr.ID] = zekr
		catalog.items = append(catalog.items, zekr)
	}
	return catalog
}

// LoadFromCSV reads a two-column (id, text) CSV file into a Catalog.
func LoadFromCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open azkar file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse azkar file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("azkar file %s is empty", path)
	}

	catalog := &Catalog{byID: make(map[int]models.Zekr, len(records))}
	for _, record := range records {
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid zekr id %q in %s: %w", record[0], path, err)
		}
		zekr := models.Zekr{ID: id, Text: record[1]}
		catalog.byID[id] = zekr
		catalog.items = append(catalog.items, zekr)
	}
	return catalog, nil
}

// Lookup returns the zekr text for id.
func (c *Catalog) Lookup(id int) (string, bool) {
	zekr, ok := c.byID[id]
	return zekr.Text, ok
}

// All returns the catalogue in file order.
func (c *Catalog) All() []models.Zekr {
	return c.items
}
