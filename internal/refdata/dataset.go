package refdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shop-checkout/internal/model"

	"github.com/rs/zerolog"
)

// DatasetConfig names the reference data files a dataset provider loads.
type DatasetConfig struct {
	// CountriesPath is the gzipped CSV of code,name country records.
	CountriesPath string

	// StatesPath is the gzipped CSV of country_code,name state records.
	StatesPath string
}

// DefaultDatasetConfig returns the default dataset file locations.
func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{
		CountriesPath: "data/refdata/countries.csv.gz",
		StatesPath:    "data/refdata/states.csv.gz",
	}
}

// datasetProvider implements Provider from reference data files held
// entirely in memory after load. Lookups are read-only afterwards, so
// no locking is needed.
type datasetProvider struct {
	countries []model.Country
	states    map[string][]model.State
	now       func() time.Time
	logger    zerolog.Logger
}

// NewDatasetProvider loads both reference data files through the given
// loader and serves all lookups from memory.
func NewDatasetProvider(ctx context.Context, cfg DatasetConfig, loader Loader, logger zerolog.Logger) (Provider, error) {
	logger = logger.With().Str("component", "refdata-dataset").Logger()

	countryRecords, err := loader.Load(ctx, cfg.CountriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load countries dataset: %w", err)
	}

	stateRecords, err := loader.Load(ctx, cfg.StatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load states dataset: %w", err)
	}

	countries, err := parseCountries(countryRecords)
	if err != nil {
		return nil, err
	}

	states, err := parseStates(stateRecords)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("countries", len(countries)).
		Int("state_lists", len(states)).
		Msg("reference data dataset loaded")

	return &datasetProvider{
		countries: countries,
		states:    states,
		now:       time.Now,
		logger:    logger,
	}, nil
}

func parseCountries(records [][]string) ([]model.Country, error) {
	countries := make([]model.Country, 0, len(records))
	for i, record := range records {
		if len(record) != 2 {
			return nil, fmt.Errorf("countries dataset: record %d has %d fields, want 2", i+1, len(record))
		}
		countries = append(countries, model.Country{Code: record[0], Name: record[1]})
	}

	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})

	return countries, nil
}

func parseStates(records [][]string) (map[string][]model.State, error) {
	states := make(map[string][]model.State)
	for i, record := range records {
		if len(record) != 2 {
			return nil, fmt.Errorf("states dataset: record %d has %d fields, want 2", i+1, len(record))
		}
		code := record[0]
		states[code] = append(states[code], model.State{Name: record[1], CountryCode: code})
	}

	for code := range states {
		sort.Slice(states[code], func(i, j int) bool {
			return states[code][i].Name < states[code][j].Name
		})
	}

	return states, nil
}

// Months returns the month numbers from startMonth through 12.
func (p *datasetProvider) Months(_ context.Context, startMonth int) ([]int, error) {
	return expirationMonths(startMonth), nil
}

// Years returns the expiration year list, current year onwards.
func (p *datasetProvider) Years(_ context.Context) ([]int, error) {
	return expirationYears(p.now()), nil
}

// Countries returns all available countries ordered by name.
func (p *datasetProvider) Countries(_ context.Context) ([]model.Country, error) {
	return append([]model.Country(nil), p.countries...), nil
}

// States returns all states belonging to the given country.
func (p *datasetProvider) States(_ context.Context, countryCode string) ([]model.State, error) {
	return append([]model.State(nil), p.states[countryCode]...), nil
}
