package storage

import (
	"context"
	"sync"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// MemoryBucket keeps objects in a map for tests.
type MemoryBucket struct {
	mu      sync.Mutex
	name    string
	baseURL string
	objects map[string]Object
	// FailWith, when set, is returned by every Put.
	FailWith error
}

type Object struct {
	Data        []byte
	ContentType string
}

func NewMemoryBucket(name, projectURL string) *MemoryBucket {
	return &MemoryBucket{
		name:    name,
		baseURL: PublicBase(projectURL, name),
		objects: map[string]Object{},
	}
}

func (b *MemoryBucket) Name() string { return b.name }

func (b *MemoryBucket) Put(_ context.Context, key string, body []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWith != nil {
		return b.FailWith
	}
	if _, ok := b.objects[key]; ok {
		return errs.NewObjectExistsError(key)
	}
	b.objects[key] = Object{Data: append([]byte(nil), body...), ContentType: contentType}
	return nil
}

func (b *MemoryBucket) PublicURL(key string) string {
	return b.baseURL + escapeKey(key)
}

// Keys returns the stored object keys.
func (b *MemoryBucket) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	return keys
}

func (b *MemoryBucket) Get(key string) (Object, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[key]
	return o, ok
}
