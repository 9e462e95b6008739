package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const subscriptionColumns = "id, name, provider, amount, next_billing, status, last_used, cancelled_at"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS subscriptions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	provider TEXT NOT NULL,
	amount REAL NOT NULL DEFAULT 0,
	next_billing TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Active',
	last_used TIMESTAMP,
	cancelled_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_subscriptions_identity
	ON subscriptions(LOWER(name), LOWER(provider));
`

// SQLiteStore implements service.Store using SQLite.
type SQLiteStore struct {
	now    func() time.Time
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (and if needed creates) a SQLite-backed store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path", common.ErrMissingConfig)
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and a single
	// connection serializes all store mutations.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all subscriptions.
func (s *SQLiteStore) List(ctx context.Context) ([]*model.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []*model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscriptions: %w", err)
	}
	return subs, nil
}

// Ensure reconciles a detected fact: the existing subscription with the
// same case-insensitive (name, provider) wins, otherwise a new record is
// inserted. Both steps run inside one transaction.
func (s *SQLiteStore) Ensure(ctx context.Context, fact model.DetectedFact) (*model.Subscription, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE LOWER(name) = LOWER(?) AND LOWER(provider) = LOWER(?)
		LIMIT 1
	`, fact.Name, fact.Provider)

	sub, err := scanSubscription(row)
	switch {
	case err == nil:
		return sub, tx.Commit()
	case errors.Is(err, sql.ErrNoRows):
		// Fall through to insert.
	default:
		return nil, err
	}

	created, err := s.insertTx(ctx, tx, model.Subscription{
		Name:        fact.Name,
		Provider:    fact.Provider,
		Amount:      fact.Amount,
		NextBilling: fact.NextBilling,
		Status:      fact.Status,
	})
	if err != nil {
		return nil, err
	}
	return created, tx.Commit()
}

// Create adds a subscription unconditionally.
func (s *SQLiteStore) Create(ctx context.Context, sub model.Subscription) (*model.Subscription, error) {
	if sub.Name == "" || sub.Provider == "" || sub.NextBilling == "" {
		return nil, fmt.Errorf("%w: name, provider and nextBilling are required", common.ErrMissingField)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created, err := s.insertTx(ctx, tx, sub)
	if err != nil {
		return nil, err
	}
	return created, tx.Commit()
}

func (s *SQLiteStore) insertTx(ctx context.Context, tx *sql.Tx, sub model.Subscription) (*model.Subscription, error) {
	if sub.ID == "" {
		// Counter-assigned ids continue above the highest numeric id,
		// caller-supplied numeric ids included.
		var next int64
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(CAST(id AS INTEGER)), 0) + 1
			FROM subscriptions
			WHERE id GLOB '[0-9]*'
		`).Scan(&next)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate subscription id: %w", err)
		}
		sub.ID = strconv.FormatInt(next, 10)
	}
	if sub.Amount < 0 {
		sub.Amount = 0
	}
	if sub.Status == "" {
		sub.Status = model.StatusActive
	}
	if sub.LastUsed == nil {
		now := s.now()
		sub.LastUsed = &now
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.Name, sub.Provider, sub.Amount, sub.NextBilling, string(sub.Status), sub.LastUsed, sub.CancelledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}

	c := sub
	return &c, nil
}

// UpdateStatus sets the status of the identified subscription.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Subscription, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)
	}

	storedID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE subscriptions SET status = ? WHERE id = ?`, string(status), storedID); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return s.getByID(ctx, storedID)
}

// Cancel marks the identified subscription cancelled and records when.
// The row stays in the table; cancellation is a status transition.
func (s *SQLiteStore) Cancel(ctx context.Context, id string) (*model.Subscription, error) {
	storedID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = ?, cancelled_at = ? WHERE id = ?
	`, string(model.StatusCancelled), s.now(), storedID); err != nil {
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return s.getByID(ctx, storedID)
}

// TouchUsage records that the identified subscription was just used.
func (s *SQLiteStore) TouchUsage(ctx context.Context, id string) (*model.Subscription, error) {
	storedID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE subscriptions SET last_used = ? WHERE id = ?`, s.now(), storedID); err != nil {
		return nil, fmt.Errorf("failed to update last used: %w", err)
	}
	return s.getByID(ctx, storedID)
}

// Delete removes the identified subscription, reporting whether a row
// matched.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	storedID, err := s.resolveID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, storedID)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return n > 0, nil
}

// resolveID maps a possibly loosely-typed external identifier to the
// stored id. Counter-assigned ids are canonical decimal strings, so a
// lookup by "03" also tries "3".
func (s *SQLiteStore) resolveID(ctx context.Context, id string) (string, error) {
	candidates := []string{id}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if canonical := strconv.FormatInt(n, 10); canonical != id {
			candidates = append(candidates, canonical)
		}
	}

	for _, candidate := range candidates {
		var stored string
		err := s.db.QueryRowContext(ctx, `SELECT id FROM subscriptions WHERE id = ?`, candidate).Scan(&stored)
		switch {
		case err == nil:
			return stored, nil
		case errors.Is(err, sql.ErrNoRows):
			continue
		default:
			return "", fmt.Errorf("failed to look up subscription: %w", err)
		}
	}
	return "", common.ErrNotFound
}

func (s *SQLiteStore) getByID(ctx context.Context, id string) (*model.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`, id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return sub, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*model.Subscription, error) {
	var (
		sub         model.Subscription
		status      string
		lastUsed    sql.NullTime
		cancelledAt sql.NullTime
	)

	err := row.Scan(&sub.ID, &sub.Name, &sub.Provider, &sub.Amount, &sub.NextBilling, &status, &lastUsed, &cancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan subscription: %w", err)
	}

	sub.Status = model.Status(status)
	if lastUsed.Valid {
		t := lastUsed.Time
		sub.LastUsed = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		sub.CancelledAt = &t
	}
	return &sub, nil
}
