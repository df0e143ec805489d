// Package kv is the string-keyed byte store backing the client session.
package kv

import "context"

// Repository is a durable key-value map. Get returns common.ErrorNotFound
// for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
