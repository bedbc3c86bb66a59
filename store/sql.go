package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ezBadminton/goswiss/core"
)

const connectTimeout = 5 * time.Second

var schemas = map[string]string{
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_date TIMESTAMP NOT NULL,
			current_round INTEGER NOT NULL,
			num_rounds INTEGER NOT NULL,
			pairing_method TEXT NOT NULL,
			snapshot TEXT NOT NULL
		)`,
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_date TIMESTAMPTZ NOT NULL,
			current_round INTEGER NOT NULL,
			num_rounds INTEGER NOT NULL,
			pairing_method TEXT NOT NULL,
			snapshot JSONB NOT NULL
		)`,
}

// SQLStore keeps one row per tournament in a SQLite or
// Postgres database. The whole snapshot is stored as JSON next
// to the columns needed for listing.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// Connects to the database and creates the tournaments
// table if it does not exist yet.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	sqlDriver := driver
	if driver == DriverSQLite {
		sqlDriver = "sqlite3"
	}
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("unknown SQL driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows only one writer and every connection
		// to :memory: is its own database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", connectTimeout, err)
	}

	store := &SQLStore{db: db, driver: driver}
	if _, err := db.ExecContext(ctx, schemas[driver]); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create the tournaments table: %w", err)
	}

	return store, nil
}

// Rewrites the ? placeholders to $n for Postgres
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n += 1
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Create(ctx context.Context, snapshot *core.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	id := newID()
	query := s.rebind(`
		INSERT INTO tournaments (
			id, name, created_date, current_round, num_rounds, pairing_method, snapshot
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err = s.db.ExecContext(ctx, query,
		id, snapshot.Name, snapshot.CreatedAt.UTC(), snapshot.CurrentRound,
		snapshot.TotalRounds, snapshot.PairingMethod.String(), string(data),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert tournament: %w", err)
	}
	return id, nil
}

func (s *SQLStore) Load(ctx context.Context, id string) (*core.Snapshot, error) {
	query := s.rebind(`SELECT snapshot FROM tournaments WHERE id = ?`)

	var data string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	snapshot := &core.Snapshot{}
	if err := json.Unmarshal([]byte(data), snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode tournament %s: %w", id, err)
	}
	return snapshot, nil
}

func (s *SQLStore) Save(ctx context.Context, id string, snapshot *core.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	query := s.rebind(`
		UPDATE tournaments
		SET name = ?, current_round = ?, num_rounds = ?, pairing_method = ?, snapshot = ?
		WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query,
		snapshot.Name, snapshot.CurrentRound, snapshot.TotalRounds,
		snapshot.PairingMethod.String(), string(data), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	query := s.rebind(`DELETE FROM tournaments WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (s *SQLStore) List(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT id, name, created_date, current_round, num_rounds, pairing_method
		FROM tournaments
		ORDER BY created_date DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var (
			summary Summary
			method  string
		)
		err := rows.Scan(
			&summary.ID, &summary.Name, &summary.CreatedAt,
			&summary.CurrentRound, &summary.TotalRounds, &method,
		)
		if err != nil {
			return nil, err
		}
		summary.PairingMethod, err = core.ParsePairingMethod(method)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
