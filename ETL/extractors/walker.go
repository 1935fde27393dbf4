package extractors

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
)

// DocumentWalker traverses one category subtree of the cloned Pulse data
// directory and parses every JSON document under it. Dimensional fields
// (state, year, quarter) are derived from path segments only; the document
// body never overrides them because its internal labeling is inconsistent
// across years and quarters.
//
// A document that cannot be read or parsed is skipped and logged, and the
// walk continues over the remaining documents.
type DocumentWalker struct {
	logger *utils.ETLLogger
}

// NewDocumentWalker creates a new DocumentWalker
func NewDocumentWalker(logger *utils.ETLLogger) *DocumentWalker {
	return &DocumentWalker{
		logger: logger,
	}
}

// countryName is the fixed country segment of the Pulse tree. Documents at
// country level carry it as their state dimension.
const countryName = "india"

// Walk parses all documents of the given category and kind under dataDir.
// It returns the parsed documents and the number of skipped files.
func (w *DocumentWalker) Walk(dataDir string, category models.Category, kind models.Kind) ([]models.Document, int) {
	base := categoryBase(dataDir, category, kind)

	if _, err := os.Stat(base); err != nil {
		w.logger.Error("Path not found, skipping subtree: %s", base)
		return nil, 0
	}

	var documents []models.Document
	skipped := 0

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Error("Failed to access %s: %v", path, err)
			skipped++
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		state, year, quarter, ok := DeriveDimensions(path)
		if !ok {
			w.logger.Debug("No year/quarter in path, skipping: %s", path)
			skipped++
			return nil
		}

		data, readErr := readEnvelope(path)
		if readErr != nil {
			w.logger.Error("Skipping document %s: %v", path, readErr)
			skipped++
			return nil
		}
		if data == nil {
			// Envelope reported success=false or carried no payload
			w.logger.Debug("Empty envelope, skipping: %s", path)
			skipped++
			return nil
		}

		documents = append(documents, models.Document{
			Category: category,
			Kind:     kind,
			State:    state,
			Year:     year,
			Quarter:  quarter,
			Path:     path,
			Data:     data,
		})
		return nil
	})
	if err != nil {
		w.logger.Error("Walk over %s aborted: %v", base, err)
	}

	return documents, skipped
}

// categoryBase builds the subtree root for a category/kind pair.
// The map category nests an extra "hover" segment.
func categoryBase(dataDir string, category models.Category, kind models.Kind) string {
	if category == models.CategoryMap {
		return filepath.Join(dataDir, string(category), string(kind), "hover", "country", countryName)
	}
	return filepath.Join(dataDir, string(category), string(kind), "country", countryName)
}

// DeriveDimensions extracts (state, year, quarter) from a document path.
// The layout is .../country/india[/state/<state>]/<year>/<quarter>.json;
// state defaults to the country name for country-level documents.
func DeriveDimensions(path string) (state string, year, quarter int, ok bool) {
	state = countryName
	parts := strings.Split(filepath.ToSlash(path), "/")

	for i, part := range parts {
		if part == "state" && i+1 < len(parts) {
			state = parts[i+1]
			continue
		}

		if len(part) == 4 && i+1 < len(parts) {
			y, err := strconv.Atoi(part)
			if err != nil || y < 2000 || y > 2099 {
				continue
			}
			next := strings.TrimSuffix(parts[i+1], ".json")
			q, err := strconv.Atoi(next)
			if err != nil || q < 1 || q > 4 {
				continue
			}
			return state, y, q, true
		}
	}

	return "", 0, 0, false
}

// readEnvelope reads and parses the outer envelope of a Pulse document.
// It returns the raw payload, or nil when the envelope carries none.
func readEnvelope(path string) (json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var envelope models.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, nil
	}

	return envelope.Data, nil
}
