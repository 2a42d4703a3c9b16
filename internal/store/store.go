package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Simplici0/bladecost/internal/bladecost"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const (
	defaultCacheSize = 256
	defaultListLimit = 50
	maxListLimit     = 500
)

// Store persists evaluations, economic presets and API clients in SQLite.
type Store struct {
	db    *sql.DB
	cache *lru.Cache[string, Evaluation]
}

// Evaluation is a persisted cost evaluation.
type Evaluation struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	CreatedAt    time.Time          `json:"created_at"`
	SectionCount int                `json:"section_count"`
	TotalCost    float64            `json:"total_cost"`
	Outputs      map[string]float64 `json:"outputs"`
	Result       json.RawMessage    `json:"result"`
}

// EvaluationSummary is one row of an evaluation listing.
type EvaluationSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	SectionCount int       `json:"section_count"`
	TotalCost    float64   `json:"total_cost"`
}

// New returns a Store backed by db. cacheSize <= 0 selects the default size.
func New(db *sql.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, Evaluation](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create evaluation cache: %w", err)
	}
	return &Store{db: db, cache: cache}, nil
}

// SaveEvaluation persists a result under a new ID.
func (s *Store) SaveEvaluation(ctx context.Context, name string, res bladecost.Result) (Evaluation, error) {
	outputs := res.Outputs()
	outputsJSON, err := json.Marshal(outputs)
	if err != nil {
		return Evaluation{}, fmt.Errorf("encode outputs: %w", err)
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return Evaluation{}, fmt.Errorf("encode result: %w", err)
	}

	ev := Evaluation{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		SectionCount: len(res.Sections),
		TotalCost:    res.Final().TotalBladeCost(),
		Outputs:      outputs,
		Result:       resultJSON,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, name, created_at, section_count, total_cost, outputs_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.Name, ev.CreatedAt.Format(time.DateTime), ev.SectionCount, ev.TotalCost, string(outputsJSON), string(resultJSON))
	if err != nil {
		return Evaluation{}, fmt.Errorf("insert evaluation: %w", err)
	}

	s.cache.Add(ev.ID, ev)
	return ev.clone(), nil
}

// GetEvaluation returns the evaluation with the given ID. The caller owns the returned
// value.
func (s *Store) GetEvaluation(ctx context.Context, id string) (Evaluation, error) {
	if ev, ok := s.cache.Get(id); ok {
		return ev.clone(), nil
	}

	var (
		ev          Evaluation
		createdAt   string
		outputsJSON string
		resultJSON  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, section_count, total_cost, outputs_json, result_json
		FROM evaluations
		WHERE id = ?
	`, id).Scan(&ev.ID, &ev.Name, &createdAt, &ev.SectionCount, &ev.TotalCost, &outputsJSON, &resultJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
		}
		return Evaluation{}, fmt.Errorf("query evaluation: %w", err)
	}

	if ev.CreatedAt, err = parseTime(createdAt); err != nil {
		return Evaluation{}, err
	}
	if err := json.Unmarshal([]byte(outputsJSON), &ev.Outputs); err != nil {
		return Evaluation{}, fmt.Errorf("decode outputs of %s: %w", id, err)
	}
	ev.Result = json.RawMessage(resultJSON)

	s.cache.Add(ev.ID, ev)
	return ev.clone(), nil
}

// ListEvaluations returns evaluations newest first, optionally filtered by a name
// substring.
func (s *Store) ListEvaluations(ctx context.Context, query string, limit int) ([]EvaluationSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	search := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, section_count, total_cost
		FROM evaluations
		WHERE (? = '' OR name LIKE ? ESCAPE '\')
		ORDER BY datetime(created_at) DESC, rowid DESC
		LIMIT ?
	`, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]EvaluationSummary, 0)
	for rows.Next() {
		var item EvaluationSummary
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Name, &createdAt, &item.SectionCount, &item.TotalCost); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if item.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return out, nil
}

// clone copies the map and JSON held by a cached evaluation.
func (e Evaluation) clone() Evaluation {
	e.Outputs = maps.Clone(e.Outputs)
	e.Result = slices.Clone(e.Result)
	return e
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes a user query match literally inside a LIKE pattern.
func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", raw)
}
