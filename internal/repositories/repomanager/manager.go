// Package repomanager owns the store handle: it picks a backend from the
// DSN, opens the connection, applies migrations and hands out repositories.
// Callers open one manager at process start and Close it on exit.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/repositories/records"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Records() records.Repository
	Close() error
}

// Backend identifies the storage engine behind a DSN.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// DetectBackend maps a DSN to a backend. postgres:// and postgresql:// URLs
// select Postgres; anything else is taken as a SQLite path or file: URI.
func DetectBackend(dsn string) (Backend, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", fmt.Errorf("%w: empty", common.ErrorUnsupportedDSN)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, nil
	case strings.Contains(dsn, "://"):
		return "", fmt.Errorf("%w: %s", common.ErrorUnsupportedDSN, dsn)
	default:
		return BackendSQLite, nil
	}
}

// Open connects to the store named by dsn and runs migrations.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	backend, err := DetectBackend(dsn)
	if err != nil {
		return nil, err
	}

	var m RepositoryManager
	switch backend {
	case BackendPostgres:
		m, err = NewPostgresRepositoryManager(ctx, dsn)
	default:
		m, err = NewSQLiteRepositoryManager(ctx, dsn)
	}
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}
