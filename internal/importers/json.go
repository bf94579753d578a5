package importers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/mrlokans/zipshelf/internal/entities"
	"github.com/mrlokans/zipshelf/internal/metrics"
)

// ParseWarning is the message logged for a document skipped by JSONLoader.
const ParseWarning = "failed to parse JSON document, skipping"

// RawRecord is one decoded, unvalidated JSON value taken from a document.
type RawRecord any

// Logger receives non-fatal warnings. *zap.Logger satisfies it.
type Logger interface {
	Warn(msg string, fields ...zap.Field)
}

// JSONLoader reads book records from the .json documents of an extracted archive.
type JSONLoader struct {
	logger  Logger
	metrics *metrics.Metrics
}

// NewJSONLoader creates a loader reporting skipped documents to logger.
// A nil logger discards warnings; nil metrics are allowed.
func NewJSONLoader(logger Logger, m *metrics.Metrics) *JSONLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONLoader{logger: logger, metrics: m}
}

// FilterJSON keeps the paths with a .json extension (any case), preserving order.
func FilterJSON(paths []string) []string {
	var jsonFiles []string
	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			jsonFiles = append(jsonFiles, path)
		}
	}
	return jsonFiles
}

// Load selects the .json documents from paths, parses them concurrently and
// returns the normalized books in document order, then in-document order.
func (l *JSONLoader) Load(ctx context.Context, paths []string) ([]entities.Book, error) {
	jsonFiles := FilterJSON(paths)
	if len(jsonFiles) == 0 {
		return nil, ErrNoDataFound
	}
	l.metrics.AddJSONFiles(len(jsonFiles))

	records, err := l.ReadRecords(ctx, jsonFiles)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoValidData
	}

	books := Normalize(records)
	l.metrics.AddBooks(len(books))
	return books, nil
}

// ReadRecords parses every document and concatenates their records. Documents
// that fail are logged and skipped, so the only error is context cancellation.
func (l *JSONLoader) ReadRecords(ctx context.Context, paths []string) ([]RawRecord, error) {
	perFile := iter.Map(paths, func(path *string) []RawRecord {
		if ctx.Err() != nil {
			return nil
		}
		return l.readFile(*path)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []RawRecord
	for _, fileRecords := range perFile {
		records = append(records, fileRecords...)
	}
	return records, nil
}

func (l *JSONLoader) readFile(path string) []RawRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		l.warn(path, err)
		return nil
	}

	records, err := DecodeRecords(data)
	if err != nil {
		l.warn(path, err)
		return nil
	}
	return records
}

func (l *JSONLoader) warn(path string, err error) {
	l.metrics.IncParseWarning()
	l.logger.Warn(ParseWarning, zap.String("file", path), zap.Error(err))
}

// DecodeRecords parses one document. An array yields its elements, an object
// yields itself, any other JSON value yields no records.
func DecodeRecords(data []byte) ([]RawRecord, error) {
	var value any
	if err := json.Unmarshal(stripBOM(data), &value); err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case []any:
		records := make([]RawRecord, len(v))
		for i, element := range v {
			records[i] = element
		}
		return records, nil
	case map[string]any:
		return []RawRecord{v}, nil
	default:
		return nil, nil
	}
}

// stripBOM removes a leading UTF-8 byte order mark, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
