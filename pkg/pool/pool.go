// Package pool provides a bounded set of reusable database connections.
//
// Callers check out a connection with Acquire and give it back with Release.
// Once all connections are checked out, Acquire queues the caller until a
// connection is released or its context is done. Waiters are served in order.
package pool

import (
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
	"sync"
	"sync/atomic"
)

// Pool bounds the number of connections checked out of a sqlx.DB.
type Pool struct {
	db      *sqlx.DB
	size    int64
	sem     *semaphore.Weighted
	inUse   atomic.Int64
	waiting atomic.Int64
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Size    int64 `json:"size"`
	InUse   int64 `json:"in_use"`
	Waiting int64 `json:"waiting"`
}

// New wraps db in a pool of at most size connections.
func New(db *sqlx.DB, size int) *Pool {
	if size < 1 {
		size = 1
	}

	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)

	return &Pool{
		db:   db,
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Acquire checks out a connection, blocking while the pool is exhausted.
// The returned connection must be released.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if !p.sem.TryAcquire(1) {
		p.waiting.Add(1)
		err := p.sem.Acquire(ctx, 1)
		p.waiting.Add(-1)

		if err != nil {
			return nil, errors.Wrap(err, "can't acquire connection")
		}
	}

	conn, err := p.db.Connx(ctx)
	if err != nil {
		p.sem.Release(1)

		return nil, errors.Wrap(err, "can't connect to database")
	}

	p.inUse.Add(1)

	return &Conn{Conn: conn, pool: p}, nil
}

// Check acquires a connection, pings the database and releases the connection again.
func (p *Pool) Check(ctx context.Context) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return errors.Wrap(conn.PingContext(ctx), "can't ping database")
}

// Stats returns the current pool usage.
func (p *Pool) Stats() Stats {
	return Stats{
		Size:    p.size,
		InUse:   p.inUse.Load(),
		Waiting: p.waiting.Load(),
	}
}

// Close closes the underlying database.
func (p *Pool) Close() error {
	return p.db.Close()
}

// Conn is a connection checked out of a Pool.
type Conn struct {
	*sqlx.Conn

	pool *Pool
	once sync.Once
}

// Release returns the connection to the pool. Subsequent calls are no-ops.
func (c *Conn) Release() {
	c.once.Do(func() {
		// sql.ErrConnDone is the only possible error here.
		_ = c.Conn.Close()
		c.pool.inUse.Add(-1)
		c.pool.sem.Release(1)
	})
}
