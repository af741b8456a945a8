package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Free-plan monthly allowances; premium users are unlimited.
const (
	FreeParaphraseLimit = 50
	FreeGrammarLimit    = 30

	usageResetPeriod = 30 * 24 * time.Hour
)

const (
	ActionParaphrase = "paraphrase"
	ActionGrammar    = "grammar"
)

type User struct {
	UID                string
	Email              string
	Name               string
	Plan               string
	ParaphraseCount    int
	GrammarCount       int
	LastReset          time.Time
	TotalParaphrases   int
	TotalGrammarChecks int
	CreatedAt          time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetOrCreate returns the user, creating a fresh free-plan record on first
// login.
func (r *UserRepo) GetOrCreate(ctx context.Context, uid, email, name string) (User, error) {
	const ins = `
insert into users(uid, email, name)
values ($1,$2,$3)
on conflict (uid) do nothing`
	if _, err := r.DB.ExecContext(ctx, ins, uid, email, name); err != nil {
		return User{}, err
	}
	return r.get(ctx, uid)
}

func (r *UserRepo) get(ctx context.Context, uid string) (User, error) {
	const q = `
select uid, email, name, plan, paraphrase_count, grammar_count, last_reset,
       total_paraphrases, total_grammar_checks, created_at
from users where uid=$1`
	var u User
	err := r.DB.QueryRowContext(ctx, q, uid).Scan(
		&u.UID, &u.Email, &u.Name, &u.Plan, &u.ParaphraseCount, &u.GrammarCount,
		&u.LastReset, &u.TotalParaphrases, &u.TotalGrammarChecks, &u.CreatedAt)
	return u, err
}

// CheckQuota reports whether uid may run one more action this period and how
// many runs remain (-1 for unlimited). Counters older than the reset period
// are zeroed first. The remaining value is approximate under concurrent
// requests for the same identity.
func (r *UserRepo) CheckQuota(ctx context.Context, uid, action string) (bool, int, error) {
	u, err := r.get(ctx, uid)
	if err != nil {
		return false, 0, err
	}
	if u.Plan == "premium" {
		return true, -1, nil
	}

	if needsReset(u.LastReset, time.Now()) {
		const reset = `
update users set paraphrase_count=0, grammar_count=0, last_reset=now()
where uid=$1`
		if _, err := r.DB.ExecContext(ctx, reset, uid); err != nil {
			return false, 0, err
		}
		u.ParaphraseCount, u.GrammarCount = 0, 0
	}

	switch action {
	case ActionParaphrase:
		remaining := FreeParaphraseLimit - u.ParaphraseCount
		return remaining > 0, remaining, nil
	case ActionGrammar:
		remaining := FreeGrammarLimit - u.GrammarCount
		return remaining > 0, remaining, nil
	}
	return false, 0, fmt.Errorf("unknown action %q", action)
}

// IncrementUsage bumps the period counter and the lifetime total for action.
func (r *UserRepo) IncrementUsage(ctx context.Context, uid, action string) error {
	var q string
	switch action {
	case ActionParaphrase:
		q = `update users set paraphrase_count=paraphrase_count+1,
		     total_paraphrases=total_paraphrases+1 where uid=$1`
	case ActionGrammar:
		q = `update users set grammar_count=grammar_count+1,
		     total_grammar_checks=total_grammar_checks+1 where uid=$1`
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	_, err := r.DB.ExecContext(ctx, q, uid)
	return err
}

func needsReset(lastReset, now time.Time) bool {
	return now.Sub(lastReset) >= usageResetPeriod
}
