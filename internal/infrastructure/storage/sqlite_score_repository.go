package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

const scoreSchema = `
CREATE TABLE IF NOT EXISTS panel_scores (
	session_id  TEXT    NOT NULL,
	panel_id    TEXT    NOT NULL,
	uniformity  INTEGER NOT NULL,
	coverage    INTEGER NOT NULL,
	travel      INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL,
	PRIMARY KEY (session_id, panel_id)
)`

// OpenScoreDB открывает базу оценок и создаёт схему
func OpenScoreDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open score db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(scoreSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// SQLiteScoreRepository хранит оценки одной сессии в sqlite.
// Оценки других сессий остаются в базе как история.
type SQLiteScoreRepository struct {
	db        *sql.DB
	sessionID string
}

// NewSQLiteScoreRepository создаёт хранилище для сессии sessionID
func NewSQLiteScoreRepository(db *sql.DB, sessionID string) *SQLiteScoreRepository {
	return &SQLiteScoreRepository{db: db, sessionID: sessionID}
}

// Save сохраняет оценку панели, перезаписывая предыдущую
func (r *SQLiteScoreRepository) Save(ctx context.Context, panelID uuid.UUID, score entity.WeldingScore) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO panel_scores (session_id, panel_id, uniformity, coverage, travel, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, panel_id) DO UPDATE SET
			uniformity = excluded.uniformity,
			coverage   = excluded.coverage,
			travel     = excluded.travel,
			updated_at = excluded.updated_at`,
		r.sessionID, panelID.String(), score.Uniformity, score.Coverage, score.Travel, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

// Get возвращает оценку панели
func (r *SQLiteScoreRepository) Get(ctx context.Context, panelID uuid.UUID) (entity.WeldingScore, bool, error) {
	var score entity.WeldingScore
	err := r.db.QueryRowContext(ctx, `
		SELECT uniformity, coverage, travel FROM panel_scores
		WHERE session_id = ? AND panel_id = ?`,
		r.sessionID, panelID.String()).Scan(&score.Uniformity, &score.Coverage, &score.Travel)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.WeldingScore{}, false, nil
	}
	if err != nil {
		return entity.WeldingScore{}, false, fmt.Errorf("get score: %w", err)
	}
	return score, true, nil
}

// List возвращает все оценки сессии
func (r *SQLiteScoreRepository) List(ctx context.Context) (map[uuid.UUID]entity.WeldingScore, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT panel_id, uniformity, coverage, travel FROM panel_scores
		WHERE session_id = ?`, r.sessionID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[uuid.UUID]entity.WeldingScore)
	for rows.Next() {
		var (
			rawID string
			score entity.WeldingScore
		)
		if err := rows.Scan(&rawID, &score.Uniformity, &score.Coverage, &score.Travel); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse panel id %q: %w", rawID, err)
		}
		scores[id] = score
	}
	return scores, rows.Err()
}

// Clear удаляет оценки сессии
func (r *SQLiteScoreRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM panel_scores WHERE session_id = ?`, r.sessionID); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	return nil
}

var _ port.ScoreRepository = (*SQLiteScoreRepository)(nil)
