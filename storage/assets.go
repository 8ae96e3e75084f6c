package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// NativeAddress is the stored address of the chain's base asset
const NativeAddress = "default"

// ErrAssetNotFound is returned when no stored asset matches a lookup
var ErrAssetNotFound = errors.New("asset not found")

// Asset is the token metadata the wallet knows about
type Asset struct {
	Address  string // contract address, or NativeAddress
	Type     string // token standard, e.g. "erc20"; empty for the native asset
	Name     string
	Symbol   string
	Decimals uint8
	Balance  string // last known balance in base units
}

// IsNative reports whether the asset is the chain's base asset
func (a Asset) IsNative() bool {
	return a.Address == NativeAddress
}

// DefaultNative is seeded into every new store
var DefaultNative = Asset{
	Address:  NativeAddress,
	Name:     "ethereum",
	Symbol:   "ETH",
	Decimals: 18,
	Balance:  "0",
}

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	address  TEXT PRIMARY KEY,
	type     TEXT NOT NULL DEFAULT '',
	name     TEXT NOT NULL,
	symbol   TEXT NOT NULL,
	decimals INTEGER NOT NULL DEFAULT 18,
	balance  TEXT NOT NULL DEFAULT '0'
);`

// Store persists assets in a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the asset database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create asset db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open asset db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create asset schema: %w", err)
	}

	s := &Store{db: db}
	if _, err := s.GetAsset(ctx, NativeAddress); errors.Is(err, ErrAssetNotFound) {
		if err := s.SaveAsset(ctx, DefaultNative); err != nil {
			db.Close()
			return nil, err
		}
	} else if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func key(address string) string {
	if address == NativeAddress {
		return address
	}
	return strings.ToLower(strings.TrimSpace(address))
}

func scanAsset(row interface{ Scan(...any) error }) (Asset, error) {
	var a Asset
	var decimals int
	if err := row.Scan(&a.Address, &a.Type, &a.Name, &a.Symbol, &decimals, &a.Balance); err != nil {
		return Asset{}, err
	}
	a.Decimals = uint8(decimals)
	return a, nil
}

// GetAsset looks up an asset by contract address (or NativeAddress)
func (s *Store) GetAsset(ctx context.Context, address string) (Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT address, type, name, symbol, decimals, balance FROM assets WHERE address = ?`, key(address))
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, address)
	}
	if err != nil {
		return Asset{}, fmt.Errorf("get asset %s: %w", address, err)
	}
	return a, nil
}

// FindByName looks up an asset by name or symbol, case-insensitively
func (s *Store) FindByName(ctx context.Context, name string) (Asset, error) {
	n := strings.TrimSpace(name)
	row := s.db.QueryRowContext(ctx,
		`SELECT address, type, name, symbol, decimals, balance FROM assets
		 WHERE lower(name) = lower(?) OR lower(symbol) = lower(?)
		 ORDER BY address = 'default' DESC, name LIMIT 1`, n, n)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	if err != nil {
		return Asset{}, fmt.Errorf("find asset %s: %w", name, err)
	}
	return a, nil
}

// SaveAsset inserts or replaces an asset
func (s *Store) SaveAsset(ctx context.Context, a Asset) error {
	if a.Address == "" {
		return fmt.Errorf("save asset: empty address")
	}
	if a.Balance == "" {
		a.Balance = "0"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (address, type, name, symbol, decimals, balance) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(address) DO UPDATE SET type = excluded.type, name = excluded.name,
		 symbol = excluded.symbol, decimals = excluded.decimals, balance = excluded.balance`,
		key(a.Address), a.Type, a.Name, a.Symbol, int(a.Decimals), a.Balance)
	if err != nil {
		return fmt.Errorf("save asset %s: %w", a.Address, err)
	}
	return nil
}

// UpdateBalance records the latest known balance of an asset
func (s *Store) UpdateBalance(ctx context.Context, address, balance string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE assets SET balance = ? WHERE address = ?`, balance, key(address))
	if err != nil {
		return fmt.Errorf("update balance %s: %w", address, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, address)
	}
	return nil
}

// DeleteAsset removes a token. The native asset cannot be removed.
func (s *Store) DeleteAsset(ctx context.Context, address string) error {
	if address == NativeAddress {
		return fmt.Errorf("delete asset: native asset is permanent")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE address = ?`, key(address)); err != nil {
		return fmt.Errorf("delete asset %s: %w", address, err)
	}
	return nil
}

// ListAssets returns every asset, native first then by name
func (s *Store) ListAssets(ctx context.Context) ([]Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT address, type, name, symbol, decimals, balance FROM assets
		 ORDER BY address = 'default' DESC, lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("list assets: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
