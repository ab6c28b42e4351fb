package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DatabaseConfig interface {
	DBUrl() string
}

type Reading struct {
	ID         int64     `json:"id"`
	Line       string    `json:"line"`
	ReceivedAt time.Time `json:"receivedAt"`
}

type DatabaseService interface {
	Close() error
	RecentReadings(ctx context.Context, limit int) ([]Reading, error)
	WriteReading(ctx context.Context, line string, at time.Time) error
}

type service struct {
	cfg DatabaseConfig
	db  *sql.DB
}

func NewDatabaseService(cfg DatabaseConfig) (DatabaseService, error) {
	db, err := sql.Open("sqlite3", cfg.DBUrl())
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		line TEXT NOT NULL,
		received_at INTEGER NOT NULL
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not initialise database: %w", err)
	}

	return &service{cfg, db}, nil
}

func (s *service) Close() error {
	log.Printf("disconnected from database: %s", s.cfg.DBUrl())
	return s.db.Close()
}

func (s *service) RecentReadings(ctx context.Context, limit int) ([]Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, line, received_at FROM readings ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		var r Reading
		var at int64
		if err := rows.Scan(&r.ID, &r.Line, &at); err != nil {
			return nil, err
		}
		r.ReceivedAt = time.UnixMilli(at).UTC()
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func (s *service) WriteReading(ctx context.Context, line string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO readings (line, received_at) VALUES (?, ?)", line, at.UnixMilli())
	return err
}
