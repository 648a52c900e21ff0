// Package sqlite is the embedded single-file profile store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/brandish-progression/internal/database"
	"github.com/osse101/brandish-progression/internal/database/migrations"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/profile"
)

// ProfileStore keeps zstd-compressed profile documents in a SQLite file
type ProfileStore struct {
	db    *sql.DB
	codec *profile.Codec
}

// Open opens the database at path and applies migrations
func Open(ctx context.Context, path string, codec *profile.Codec) (*ProfileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(ErrMsgPathRequired)
	}

	db, err := sql.Open(driverName, filepath.Clean(path)+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPing, err)
	}
	if err := database.Migrate(ctx, db, goose.DialectSQLite3, migrations.SQLite()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	return &ProfileStore{db: db, codec: codec}, nil
}

// Close releases the database handle
func (s *ProfileStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database file is still usable
func (s *ProfileStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load reads and decodes a profile document
func (s *ProfileStore) Load(ctx context.Context, key domain.ProfileKey) (*domain.PlayerProfile, error) {
	var version int64
	var document []byte
	err := s.db.QueryRowContext(ctx, `
SELECT version, document
FROM player_profiles
WHERE guild_id = ? AND player_id = ?
`, key.GuildID, key.PlayerID).Scan(&version, &document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf(ErrFmtNotFound, domain.ErrProfileNotFound, key)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadProfile, err)
	}

	p, err := s.codec.Decode(document)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadProfile, err)
	}
	p.Version = version
	return p, nil
}

// Save writes p when the stored row is still at p.Version (absent for version 0)
func (s *ProfileStore) Save(ctx context.Context, p *domain.PlayerProfile) error {
	key := p.Key()
	next := p.Version + 1

	saved := *p
	saved.Version = next
	document, err := s.codec.Encode(&saved)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeProfile, err)
	}

	var res sql.Result
	if p.Version == 0 {
		res, err = s.db.ExecContext(ctx, `
INSERT INTO player_profiles (guild_id, player_id, version, document, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (guild_id, player_id) DO NOTHING
`, key.GuildID, key.PlayerID, next, document, p.CreatedAt.UTC().UnixMilli(), p.UpdatedAt.UTC().UnixMilli())
	} else {
		res, err = s.db.ExecContext(ctx, `
UPDATE player_profiles
SET version = ?, document = ?, updated_at = ?
WHERE guild_id = ? AND player_id = ? AND version = ?
`, next, document, p.UpdatedAt.UTC().UnixMilli(), key.GuildID, key.PlayerID, p.Version)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveProfile, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveProfile, err)
	}
	if affected == 0 {
		return fmt.Errorf(ErrFmtStale, domain.ErrVersionConflict, key, p.Version)
	}
	p.Version = next
	return nil
}
