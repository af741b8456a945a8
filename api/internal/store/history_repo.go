package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"vakyashuddhi/api/internal/grammar"
)

type GrammarRecord struct {
	ID        string          `json:"id"`
	UID       string          `json:"-"`
	Original  string          `json:"original"`
	Errors    []grammar.Error `json:"errors"`
	Language  string          `json:"language"`
	CreatedAt time.Time       `json:"created_at"`
}

type ParaphraseRecord struct {
	ID          string    `json:"id"`
	UID         string    `json:"-"`
	Original    string    `json:"original"`
	Paraphrased string    `json:"paraphrased"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

func (r *HistoryRepo) SaveGrammar(ctx context.Context, uid, original, language string, errs []grammar.Error) (string, error) {
	id := uuid.NewString()
	js, _ := json.Marshal(errs)
	const q = `
insert into grammar_checks(id, uid, original, errors_json, language)
values ($1,$2,$3,$4,$5)`
	_, err := r.DB.ExecContext(ctx, q, id, uid, original, js, language)
	return id, err
}

func (r *HistoryRepo) SaveParaphrase(ctx context.Context, uid, original, paraphrased, language string) (string, error) {
	id := uuid.NewString()
	const q = `
insert into paraphrases(id, uid, original, paraphrased, language)
values ($1,$2,$3,$4,$5)`
	_, err := r.DB.ExecContext(ctx, q, id, uid, original, paraphrased, language)
	return id, err
}

func (r *HistoryRepo) ListGrammar(ctx context.Context, uid string, limit int) ([]GrammarRecord, error) {
	const q = `
select id, original, errors_json, language, created_at
from grammar_checks where uid=$1
order by created_at desc limit $2`
	rows, err := r.DB.QueryContext(ctx, q, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GrammarRecord{}
	for rows.Next() {
		var rec GrammarRecord
		var js []byte
		if err := rows.Scan(&rec.ID, &rec.Original, &js, &rec.Language, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.UID = uid
		if err := json.Unmarshal(js, &rec.Errors); err != nil {
			rec.Errors = nil // tolerate a corrupt record rather than fail the list
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) ListParaphrases(ctx context.Context, uid string, limit int) ([]ParaphraseRecord, error) {
	const q = `
select id, original, paraphrased, language, created_at
from paraphrases where uid=$1
order by created_at desc limit $2`
	rows, err := r.DB.QueryContext(ctx, q, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ParaphraseRecord{}
	for rows.Next() {
		var rec ParaphraseRecord
		if err := rows.Scan(&rec.ID, &rec.Original, &rec.Paraphrased, &rec.Language, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.UID = uid
		out = append(out, rec)
	}
	return out, rows.Err()
}
