package refdata

import (
	"context"
	"fmt"
	"time"

	"shop-checkout/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresProvider implements Provider backed by the countries and
// states tables. Months and years are computed, not stored.
type postgresProvider struct {
	pool   *pgxpool.Pool
	now    func() time.Time
	logger zerolog.Logger
}

// NewPostgresProvider creates a PostgreSQL-backed reference data provider.
func NewPostgresProvider(pool *pgxpool.Pool, logger zerolog.Logger) Provider {
	return &postgresProvider{
		pool:   pool,
		now:    time.Now,
		logger: logger.With().Str("component", "refdata-postgres").Logger(),
	}
}

// Months returns the month numbers from startMonth through 12.
func (p *postgresProvider) Months(_ context.Context, startMonth int) ([]int, error) {
	return expirationMonths(startMonth), nil
}

// Years returns the expiration year list, current year onwards.
func (p *postgresProvider) Years(_ context.Context) ([]int, error) {
	return expirationYears(p.now()), nil
}

// Countries returns all available countries ordered by name.
func (p *postgresProvider) Countries(ctx context.Context) ([]model.Country, error) {
	query := `
		SELECT code, name
		FROM countries
		ORDER BY name
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to query countries")
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			p.logger.Error().Err(err).Msg("failed to scan country row")
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}

	if err := rows.Err(); err != nil {
		p.logger.Error().Err(err).Msg("error iterating country rows")
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	return countries, nil
}

// States returns all states belonging to the given country, ordered by name.
func (p *postgresProvider) States(ctx context.Context, countryCode string) ([]model.State, error) {
	query := `
		SELECT name, country_code
		FROM states
		WHERE country_code = $1
		ORDER BY name
	`

	rows, err := p.pool.Query(ctx, query, countryCode)
	if err != nil {
		p.logger.Error().Err(err).Str("country_code", countryCode).Msg("failed to query states")
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	var states []model.State
	for rows.Next() {
		var s model.State
		if err := rows.Scan(&s.Name, &s.CountryCode); err != nil {
			p.logger.Error().Err(err).Msg("failed to scan state row")
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, s)
	}

	if err := rows.Err(); err != nil {
		p.logger.Error().Err(err).Msg("error iterating state rows")
		return nil, fmt.Errorf("error iterating states: %w", err)
	}

	return states, nil
}
