// Package customdict stores admin-added vocabulary in a Redis set. Words in
// the set are treated as valid by the lexical validator, so deployments can
// whitelist names and jargon the shipped dictionary lacks.
package customdict

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type Dict struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client) *Dict {
	return &Dict{client: client, key: "custom_dict"}
}

// Add inserts a word into the custom dictionary.
func (d *Dict) Add(ctx context.Context, word string) error {
	return d.client.SAdd(ctx, d.key, word).Err()
}

// Remove deletes a word from the custom dictionary.
func (d *Dict) Remove(ctx context.Context, word string) error {
	return d.client.SRem(ctx, d.key, word).Err()
}

// Contains reports whether word was admin-added. Lookup errors read as
// "not present" so a Redis outage degrades to the shipped dictionary.
func (d *Dict) Contains(ctx context.Context, word string) bool {
	ok, err := d.client.SIsMember(ctx, d.key, word).Result()
	return err == nil && ok
}

// All returns every word in the custom dictionary.
func (d *Dict) All(ctx context.Context) ([]string, error) {
	return d.client.SMembers(ctx, d.key).Result()
}
