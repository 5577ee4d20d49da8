package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shade/internal/asset"
	"shade/internal/config"
)

// Store manages registry persistence backed by SQLite.
type Store struct {
	db         *sql.DB
	path       string
	libraryDir string
}

// Open initializes or connects to the registry database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "registry.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, libraryDir: cfg.Paths.LibraryDir}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LibraryDir returns the directory registry paths are relative to.
func (s *Store) LibraryDir() string {
	return s.libraryDir
}

// AbsolutePath resolves a library-relative path against the library dir.
func (s *Store) AbsolutePath(rel string) string {
	return filepath.Join(s.libraryDir, filepath.FromSlash(rel))
}

// NewAsset inserts a new asset row with a generated identifier.
func (s *Store) NewAsset(ctx context.Context, title, sourcePath string, format asset.Format, width, height int) (*asset.Asset, error) {
	return s.NewAssetWithID(ctx, uuid.NewString(), title, sourcePath, format, width, height)
}

// NewAssetWithID inserts a new asset row under a caller-chosen identifier.
// Ingest names the asset's library directory after the identifier, so the ID
// must exist before the row does.
func (s *Store) NewAssetWithID(ctx context.Context, id, title, sourcePath string, format asset.Format, width, height int) (*asset.Asset, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO assets (id, title, source_path, format, width, height, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, title, sourcePath, string(format), width, height, timestamp, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert asset: %w", err)
	}

	return s.GetAsset(ctx, id)
}

// GetAsset fetches an asset by identifier. Missing assets return (nil, nil).
func (s *Store) GetAsset(ctx context.Context, id string) (*asset.Asset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	record, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return record, nil
}

// FindBySourceName returns the most recently ingested asset whose source
// file has the given base name. Source paths are stored as "<id>/<name>",
// so the name is everything after the first slash.
func (s *Store) FindBySourceName(ctx context.Context, name string) (*asset.Asset, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+assetColumns+` FROM assets
         WHERE substr(source_path, instr(source_path, '/') + 1) = ?
         ORDER BY created_at DESC LIMIT 1`,
		name,
	)
	record, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by source name: %w", err)
	}
	return record, nil
}

// ListAssets returns all assets ordered by creation time.
func (s *Store) ListAssets(ctx context.Context) ([]*asset.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []*asset.Asset
	for rows.Next() {
		record, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, record)
	}
	return assets, rows.Err()
}

// RecordVariant upserts a size variant row for an asset.
func (s *Store) RecordVariant(ctx context.Context, assetID string, v asset.Variant) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO variants (asset_id, label, path, width, height)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (asset_id, label) DO UPDATE SET path = excluded.path,
             width = excluded.width, height = excluded.height`,
		assetID, v.Label, v.Path, v.Width, v.Height,
	)
	if err != nil {
		return fmt.Errorf("record variant: %w", err)
	}
	return s.touchAsset(ctx, assetID)
}

// Variant returns a single size variant, or nil when absent.
func (s *Store) Variant(ctx context.Context, assetID, label string) (*asset.Variant, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT label, path, width, height FROM variants WHERE asset_id = ? AND label = ?`,
		assetID, label,
	)
	var v asset.Variant
	err := row.Scan(&v.Label, &v.Path, &v.Width, &v.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// Variants returns all size variants for an asset ordered by label.
func (s *Store) Variants(ctx context.Context, assetID string) ([]asset.Variant, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT label, path, width, height FROM variants WHERE asset_id = ? ORDER BY label`,
		assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []asset.Variant
	for rows.Next() {
		var v asset.Variant
		if err := rows.Scan(&v.Label, &v.Path, &v.Width, &v.Height); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// Record upserts a derivative row for (asset, size label).
func (s *Store) Record(ctx context.Context, assetID string, d asset.Derivative) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO derivatives (asset_id, label, path, width, height, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (asset_id, label) DO UPDATE SET path = excluded.path,
             width = excluded.width, height = excluded.height, created_at = excluded.created_at`,
		assetID, d.Label, d.Path, d.Width, d.Height, timestamp,
	)
	if err != nil {
		return fmt.Errorf("record derivative: %w", err)
	}
	return s.touchAsset(ctx, assetID)
}

// Lookup returns the derivative for (asset, label), falling back to the
// "full" label when the requested label has none. A (nil, nil) return means
// the asset has no usable derivative and callers should fall back to the
// original asset data.
func (s *Store) Lookup(ctx context.Context, assetID, label string) (*asset.Derivative, error) {
	if label == "" {
		label = asset.FullLabel
	}
	d, err := s.lookupExact(ctx, assetID, label)
	if err != nil {
		return nil, err
	}
	if d != nil || label == asset.FullLabel {
		return d, nil
	}
	return s.lookupExact(ctx, assetID, asset.FullLabel)
}

func (s *Store) lookupExact(ctx context.Context, assetID, label string) (*asset.Derivative, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT label, path, width, height, created_at FROM derivatives WHERE asset_id = ? AND label = ?`,
		assetID, label,
	)
	var (
		d          asset.Derivative
		createdRaw string
	)
	err := row.Scan(&d.Label, &d.Path, &d.Width, &d.Height, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup derivative: %w", err)
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		d.CreatedAt = created
	}
	return &d, nil
}

// Derivatives returns all derivatives for an asset ordered by label.
func (s *Store) Derivatives(ctx context.Context, assetID string) ([]asset.Derivative, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT label, path, width, height, created_at FROM derivatives WHERE asset_id = ? ORDER BY label`,
		assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("list derivatives: %w", err)
	}
	defer rows.Close()

	var derivatives []asset.Derivative
	for rows.Next() {
		var (
			d          asset.Derivative
			createdRaw string
		)
		if err := rows.Scan(&d.Label, &d.Path, &d.Width, &d.Height, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			d.CreatedAt = created
		}
		derivatives = append(derivatives, d)
	}
	return derivatives, rows.Err()
}

// Stats returns asset and derivative counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM assets`).Scan(&stats.Assets); err != nil {
		return stats, fmt.Errorf("count assets: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM variants`).Scan(&stats.Variants); err != nil {
		return stats, fmt.Errorf("count variants: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM derivatives`).Scan(&stats.Derivatives); err != nil {
		return stats, fmt.Errorf("count derivatives: %w", err)
	}
	return stats, nil
}

// Stats aggregates registry row counts.
type Stats struct {
	Assets      int
	Variants    int
	Derivatives int
}

func (s *Store) touchAsset(ctx context.Context, assetID string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE assets SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), assetID,
	)
	if err != nil {
		return fmt.Errorf("touch asset: %w", err)
	}
	return nil
}

const assetColumns = "id, title, source_path, format, width, height, created_at, updated_at"

func scanAsset(scanner interface{ Scan(dest ...any) error }) (*asset.Asset, error) {
	var (
		record     asset.Asset
		formatStr  string
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&record.ID,
		&record.Title,
		&record.SourcePath,
		&formatStr,
		&record.Width,
		&record.Height,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	record.Format = asset.Format(formatStr)
	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return &record, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
