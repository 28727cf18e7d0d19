package wallet

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists wallet records. The store needs only whole-record
// reads and writes; ordering and uniqueness are owned by the store itself.
type Repository interface {
	ReadAll(ctx context.Context) ([]Wallet, error)
	Write(ctx context.Context, wallet Wallet) error
	Delete(ctx context.Context, address string) error

	ReadLegacy(ctx context.Context) ([]LegacyRecord, error)
	DeleteLegacy(ctx context.Context, address string) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ReadAll fetches every wallet record ordered by position.
func (r *PostgresRepository) ReadAll(ctx context.Context) ([]Wallet, error) {
	rows, err := r.db.Query(ctx, `SELECT address, name, card_style, color_from, color_to, color_pattern,
        pattern, type, path, account_id, root_address, mnemonic_saved, is_hidden, is_main,
        subscription, version, position
        FROM wallets ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		var w Wallet
		if err := rows.Scan(&w.Address, &w.Name, &w.CardStyle, &w.ColorFrom, &w.ColorTo, &w.ColorPattern,
			&w.Pattern, &w.Type, &w.Path, &w.AccountID, &w.RootAddress, &w.MnemonicSaved, &w.IsHidden,
			&w.IsMain, &w.Subscription, &w.Version, &w.Position); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// Write inserts or replaces a wallet record.
func (r *PostgresRepository) Write(ctx context.Context, w Wallet) error {
	_, err := r.db.Exec(ctx, `INSERT INTO wallets (address, name, card_style, color_from, color_to,
        color_pattern, pattern, type, path, account_id, root_address, mnemonic_saved, is_hidden,
        is_main, subscription, version, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        ON CONFLICT (address) DO UPDATE SET
        name = EXCLUDED.name, card_style = EXCLUDED.card_style, color_from = EXCLUDED.color_from,
        color_to = EXCLUDED.color_to, color_pattern = EXCLUDED.color_pattern,
        pattern = EXCLUDED.pattern, type = EXCLUDED.type, path = EXCLUDED.path,
        account_id = EXCLUDED.account_id, root_address = EXCLUDED.root_address,
        mnemonic_saved = EXCLUDED.mnemonic_saved, is_hidden = EXCLUDED.is_hidden,
        is_main = EXCLUDED.is_main, subscription = EXCLUDED.subscription,
        version = EXCLUDED.version, position = EXCLUDED.position`,
		strings.ToLower(w.Address), w.Name, w.CardStyle, w.ColorFrom, w.ColorTo, w.ColorPattern,
		w.Pattern, w.Type, w.Path, w.AccountID, w.RootAddress, w.MnemonicSaved, w.IsHidden,
		w.IsMain, w.Subscription, w.Version, w.Position)
	return err
}

// Delete removes a wallet record by address.
func (r *PostgresRepository) Delete(ctx context.Context, address string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE address = $1`, strings.ToLower(address))
	return err
}

// ReadLegacy fetches every record left in the pre-migration table.
func (r *PostgresRepository) ReadLegacy(ctx context.Context) ([]LegacyRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT address, name, account_id, path, type, card_style, pattern
        FROM legacy_wallets`)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var records []LegacyRecord
	for rows.Next() {
		var rec LegacyRecord
		if err := rows.Scan(&rec.Address, &rec.Name, &rec.AccountID, &rec.Path, &rec.Type,
			&rec.CardStyle, &rec.Pattern); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteLegacy removes one migrated legacy record.
func (r *PostgresRepository) DeleteLegacy(ctx context.Context, address string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM legacy_wallets WHERE address = $1`, strings.ToLower(address))
	return err
}
