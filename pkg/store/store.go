package store

import (
	"context"
	"github.com/lippserd/mgnrega-api/pkg/contracts"
	"github.com/lippserd/mgnrega-api/pkg/pool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"math"
)

const (
	statesQuery = `SELECT id, name FROM states ORDER BY name`

	districtsQuery = `SELECT id, name FROM districts WHERE state_id = ? ORDER BY name`

	statsQuery = `SELECT
	ms.year,
	ms.num_people_employed,
	ms.total_funds,
	ms.num_projects,
	ms.average_wage,
	ms.total_work_days,
	ms.households_covered,
	ms.employment_rate,
	ms.remarks,
	d.name AS district_name,
	s.name AS state_name
FROM mgnrega_stats ms
JOIN districts d ON ms.district_id = d.id
JOIN states s ON d.state_id = s.id
WHERE ms.district_id = ?
ORDER BY ms.year ASC`
)

// Store runs the read queries of the API, each on its own pooled connection.
type Store struct {
	Pool   *pool.Pool
	Logger *zap.SugaredLogger
}

// New returns a Store backed by p.
func New(p *pool.Pool, logger *zap.SugaredLogger) *Store {
	return &Store{Pool: p, Logger: logger}
}

// States returns all states ordered by name.
func (s Store) States(ctx context.Context) ([]contracts.State, error) {
	states := []contracts.State{}
	if err := s.selectContext(ctx, &states, statesQuery); err != nil {
		return nil, errors.Wrap(err, "can't fetch states")
	}

	return states, nil
}

// Districts returns the districts of the given state ordered by name.
// stateID is bound verbatim and compared after the database's own type coercion.
func (s Store) Districts(ctx context.Context, stateID string) ([]contracts.District, error) {
	districts := []contracts.District{}
	if err := s.selectContext(ctx, &districts, districtsQuery, stateID); err != nil {
		return nil, errors.Wrapf(err, "can't fetch districts of state %q", stateID)
	}

	return districts, nil
}

// Stats returns the yearly statistics of the given district,
// joined with the district and state names and ordered by year.
func (s Store) Stats(ctx context.Context, districtID float64) ([]contracts.StatRow, error) {
	rows := []contracts.StatRow{}
	if err := s.selectContext(ctx, &rows, statsQuery, bindNumber(districtID)); err != nil {
		return nil, errors.Wrapf(err, "can't fetch stats of district %v", districtID)
	}

	return rows, nil
}

// Ping checks that a connection can be acquired and the database answers.
func (s Store) Ping(ctx context.Context) error {
	return s.Pool.Check(ctx)
}

// PoolStats returns the current usage of the underlying pool.
func (s Store) PoolStats() pool.Stats {
	return s.Pool.Stats()
}

// bindNumber binds whole numbers as integers so that they compare exactly with integer keys.
func bindNumber(f float64) interface{} {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return int64(f)
	}

	return f
}

func (s Store) selectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	conn, err := s.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	query = conn.Rebind(query)
	s.Logger.Debugw("Performing query", zap.String("query", query), zap.Any("args", args))

	return conn.SelectContext(ctx, dest, query, args...)
}
