package appconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/dbmetrics"
	"github.com/abrans2005/cycling-booking/pkg/psqlbuilder"
)

// configRowID is the primary key of the single config row. The whole
// application config is one JSONB document replaced atomically on save.
const configRowID = 1

// Repository stores the application config in PostgreSQL.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a config repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get loads the current config document.
func (r *Repository) Get(ctx context.Context) (*domain.AppConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("document", "updated_at").
		From("app_config").
		Where(squirrel.Eq{"id": configRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config row: %v", ErrScanRow, err)
	}

	var cfg domain.AppConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: Get - decode document: %v", ErrMarshalConfig, err)
	}
	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

// Save replaces the whole config document. The upsert keeps the call
// idempotent for the first write after migration.
func (r *Repository) Save(ctx context.Context, cfg *domain.AppConfig) (*domain.AppConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - encode document: %v", ErrMarshalConfig, err)
	}

	query, args, err := psqlbuilder.Insert("app_config").
		Columns("id", "document").
		Values(configRowID, raw).
		Suffix("ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW() RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	saved := *cfg
	saved.UpdatedAt = updatedAt.Time
	return &saved, nil
}
