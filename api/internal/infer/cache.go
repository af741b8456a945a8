package infer

import (
	"context"
	"sync"
)

// CachedCorrector memoizes corrections keyed by the exact input sentence.
// Decoding is deterministic, so a concurrent duplicate computation on a key
// race is wasted work, never an inconsistency. The cache is unbounded and
// never evicted; Len exists so an eviction policy can be bolted on later.
type CachedCorrector struct {
	inner interface {
		Correct(ctx context.Context, sentence string) (string, error)
	}
	cache sync.Map // sentence -> corrected sentence
}

func NewCachedCorrector(inner interface {
	Correct(ctx context.Context, sentence string) (string, error)
}) *CachedCorrector {
	return &CachedCorrector{inner: inner}
}

func (c *CachedCorrector) Correct(ctx context.Context, sentence string) (string, error) {
	if v, ok := c.cache.Load(sentence); ok {
		return v.(string), nil
	}
	out, err := c.inner.Correct(ctx, sentence)
	if err != nil {
		return "", err
	}
	c.cache.Store(sentence, out)
	return out, nil
}

func (c *CachedCorrector) Len() int {
	n := 0
	c.cache.Range(func(_, _ any) bool { n++; return true })
	return n
}
