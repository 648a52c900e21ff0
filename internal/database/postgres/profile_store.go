package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/brandish-progression/internal/database"
	"github.com/osse101/brandish-progression/internal/database/migrations"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/profile"
)

// ProfileStore keeps one JSONB document per player and guild, guarded by a version column
type ProfileStore struct {
	db *pgxpool.Pool
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

// Migrate applies the embedded postgres migrations through the pool
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return database.Migrate(ctx, db, goose.DialectPostgres, migrations.Postgres())
}

// Load reads a profile document
func (s *ProfileStore) Load(ctx context.Context, key domain.ProfileKey) (*domain.PlayerProfile, error) {
	query := `
		SELECT version, document
		FROM player_profiles
		WHERE guild_id = $1 AND player_id = $2
	`

	var version int64
	var document []byte
	err := s.db.QueryRow(ctx, query, key.GuildID, key.PlayerID).Scan(&version, &document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf(ErrFmtNotFound, domain.ErrProfileNotFound, key)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadProfile, err)
	}

	p := &domain.PlayerProfile{}
	if err := json.Unmarshal(document, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadProfile, err)
	}
	profile.Normalize(p)
	p.Version = version
	return p, nil
}

// Save inserts a never-saved profile or updates the row still at p.Version
func (s *ProfileStore) Save(ctx context.Context, p *domain.PlayerProfile) error {
	key := p.Key()
	next := p.Version + 1

	saved := *p
	saved.Version = next
	document, err := json.Marshal(&saved)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProfile, err)
	}

	if p.Version == 0 {
		query := `
			INSERT INTO player_profiles (guild_id, player_id, version, document, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := s.db.Exec(ctx, query, key.GuildID, key.PlayerID, next, document, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
				return fmt.Errorf(ErrFmtAlreadyExist, domain.ErrVersionConflict, key)
			}
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProfile, err)
		}
		p.Version = next
		return nil
	}

	query := `
		UPDATE player_profiles
		SET version = $4, document = $5, updated_at = $6
		WHERE guild_id = $1 AND player_id = $2 AND version = $3
	`
	tag, err := s.db.Exec(ctx, query, key.GuildID, key.PlayerID, p.Version, next, document, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProfile, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf(ErrFmtStale, domain.ErrVersionConflict, key, p.Version)
	}
	p.Version = next
	return nil
}
