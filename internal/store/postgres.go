package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/config"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver
)

// DB wraps the bootstrap connection to PostgreSQL. The orchestrator holds it
// only during the bootstrap phase (readiness poll, migrations, seeding) and
// closes it before blocking on the supervised server.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectPostgres opens a lazily-connected database handle for the
// resolved descriptor. No round trip happens here: reachability is the
// readiness waiter's job, which calls [DB.Ping] on its own schedule.
func NewConnectPostgres(d config.ConnectionDescriptor, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", d.DSN())
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// bootstrap work is sequential, a tiny pool is plenty
	conn.SetMaxOpenConns(2)
	conn.SetMaxIdleConns(1)

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

// Ping issues the trivial round trip used as the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}
