// Package store persists users, usage counters and request history in
// Postgres through the pgx stdlib driver.
package store

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
create table if not exists users (
	uid                  text primary key,
	email                text not null default '',
	name                 text not null default '',
	plan                 text not null default 'free',
	paraphrase_count     int  not null default 0,
	grammar_count        int  not null default 0,
	last_reset           timestamptz not null default now(),
	total_paraphrases    int  not null default 0,
	total_grammar_checks int  not null default 0,
	created_at           timestamptz not null default now()
);

create table if not exists grammar_checks (
	id          text primary key,
	uid         text not null references users(uid),
	original    text not null,
	errors_json jsonb not null,
	language    text not null,
	created_at  timestamptz not null default now()
);

create table if not exists paraphrases (
	id          text primary key,
	uid         text not null references users(uid),
	original    text not null,
	paraphrased text not null,
	language    text not null,
	created_at  timestamptz not null default now()
);
`

func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
