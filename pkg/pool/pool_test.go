package pool

import (
	"context"
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"testing"
	"time"
)

func newPool(t *testing.T, size int) (*Pool, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("can't create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return New(sqlx.NewDb(db, "sqlmock"), size), mock
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 1s")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewClampsSize(t *testing.T) {
	p, _ := newPool(t, 0)

	if got := p.Stats().Size; got != 1 {
		t.Fatalf("expected size 1, got %d", got)
	}
}

func TestAcquireQueuesWhenExhausted(t *testing.T) {
	p, _ := newPool(t, 1)
	ctx := context.Background()

	first, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	acquired := make(chan *Conn, 1)
	go func() {
		conn, err := p.Acquire(ctx)
		if err != nil {
			t.Errorf("second acquire: %v", err)
			close(acquired)
			return
		}
		acquired <- conn
	}()

	waitFor(t, func() bool { return p.Stats().Waiting == 1 })

	select {
	case <-acquired:
		t.Fatal("second acquire must wait while the pool is exhausted")
	case <-time.After(20 * time.Millisecond):
	}

	if got := p.Stats(); got.InUse != 1 {
		t.Fatalf("expected 1 connection in use, got %+v", got)
	}

	first.Release()

	select {
	case second := <-acquired:
		if second == nil {
			t.FailNow()
		}
		second.Release()
	case <-time.After(time.Second):
		t.Fatal("second acquire did not proceed after release")
	}

	if got := p.Stats(); got.InUse != 0 || got.Waiting != 0 {
		t.Fatalf("expected idle pool, got %+v", got)
	}
}

func TestAcquireHonorsContext(t *testing.T) {
	p, _ := newPool(t, 1)

	held, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if got := p.Stats().Waiting; got != 0 {
		t.Fatalf("expected no waiters, got %d", got)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	p, _ := newPool(t, 1)

	conn, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	conn.Release()
	conn.Release()

	if got := p.Stats().InUse; got != 0 {
		t.Fatalf("expected 0 in use, got %d", got)
	}

	again, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.Release()
}

func TestCheck(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		p, mock := newPool(t, 2)
		mock.ExpectPing()

		if err := p.Check(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		if got := p.Stats().InUse; got != 0 {
			t.Fatalf("expected connection to be released, got %d in use", got)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		p, mock := newPool(t, 2)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		if err := p.Check(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if got := p.Stats().InUse; got != 0 {
			t.Fatalf("expected connection to be released, got %d in use", got)
		}
	})
}
