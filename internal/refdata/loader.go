package refdata

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Loader defines the interface for loading gzipped CSV reference data
// files (countries, states).
type Loader interface {
	// Load reads a gzipped CSV file and returns its records.
	Load(ctx context.Context, path string) ([][]string, error)
}

// fileLoader implements Loader for reading gzipped CSV files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based reference data loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "refdata-loader").Logger(),
	}
}

// Load reads a gzipped CSV reference data file and returns its records.
func (l *fileLoader) Load(ctx context.Context, path string) ([][]string, error) {
	l.logger.Info().Str("file", path).Msg("loading reference data file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open reference data file")
		return nil, fmt.Errorf("failed to open reference data file %s: %w", path, err)
	}
	defer file.Close()

	records, err := readGzippedCSV(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read reference data file")
		return nil, fmt.Errorf("failed to read reference data file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("reference data file loaded successfully")

	return records, nil
}

// readGzippedCSV decompresses and parses CSV records from r.
func readGzippedCSV(ctx context.Context, r io.Reader) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	reader := csv.NewReader(gzipReader)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV records: %w", err)
	}

	return records, nil
}
