// Package store keeps a local ledger of everything the recorder tools
// accepted: contact leads and questions the persona could not answer.
// Conversation turns are never stored here; history belongs to the caller.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Store struct {
	conn *sql.DB
}

type Lead struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type Question struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, err
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{conn: conn}, nil
}

func (s *Store) SaveLead(ctx context.Context, email, name, notes string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO leads (email, name, notes, created_at) VALUES (?, ?, ?, ?)`,
		email, name, notes, time.Now().Unix(),
	)
	return err
}

func (s *Store) SaveUnknownQuestion(ctx context.Context, question string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO unknown_questions (question, created_at) VALUES (?, ?)`,
		question, time.Now().Unix(),
	)
	return err
}

func (s *Store) ListLeads(ctx context.Context) ([]Lead, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, email, name, notes, created_at FROM leads ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		var created int64
		if err := rows.Scan(&l.ID, &l.Email, &l.Name, &l.Notes, &created); err != nil {
			return nil, err
		}
		l.CreatedAt = time.Unix(created, 0).UTC()
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (s *Store) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, question, created_at FROM unknown_questions ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		var created int64
		if err := rows.Scan(&q.ID, &q.Question, &created); err != nil {
			return nil, err
		}
		q.CreatedAt = time.Unix(created, 0).UTC()
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) Close() error {
	return s.conn.Close()
}
