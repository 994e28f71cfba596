// Package memory provides an in-process storage.Gateway used when no
// database is configured and in tests.
package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

var _ storage.Gateway = (*Gateway)(nil)

// Gateway is a thread-safe map of collections to documents.
type Gateway struct {
	mu          sync.RWMutex
	collections map[string]map[string]storage.Document
	now         func() time.Time
}

func New() *Gateway {
	return &Gateway{
		collections: make(map[string]map[string]storage.Document),
		now:         time.Now,
	}
}

func (g *Gateway) List(_ context.Context, collection string) ([]storage.Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	docs := make([]storage.Document, 0, len(g.collections[collection]))
	for _, doc := range g.collections[collection] {
		docs = append(docs, cloneDocument(doc))
	}
	return docs, nil
}

func (g *Gateway) Get(_ context.Context, collection, key string) (*storage.Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, ok := g.collections[collection][key]
	if !ok {
		return nil, nil
	}
	doc = cloneDocument(doc)
	return &doc, nil
}

func (g *Gateway) Create(_ context.Context, collection string, content json.RawMessage) (*storage.Document, error) {
	key, err := storage.NewKey()
	if err != nil {
		return nil, err
	}

	now := g.now().UTC()
	doc := storage.Document{
		ID:        model.NewRecordID(collection, key),
		Content:   slices.Clone(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	docs, ok := g.collections[collection]
	if !ok {
		docs = make(map[string]storage.Document)
		g.collections[collection] = docs
	}
	docs[key] = doc

	doc = cloneDocument(doc)
	return &doc, nil
}

func (g *Gateway) Update(_ context.Context, collection, key string, content json.RawMessage, updatedAt time.Time) (*storage.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, ok := g.collections[collection][key]
	if !ok {
		return nil, nil
	}

	if updatedAt.IsZero() {
		updatedAt = g.now()
	}
	doc.Content = slices.Clone(content)
	doc.UpdatedAt = updatedAt.UTC()
	g.collections[collection][key] = doc

	doc = cloneDocument(doc)
	return &doc, nil
}

func (g *Gateway) Delete(_ context.Context, collection, key string) (*storage.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, ok := g.collections[collection][key]
	if !ok {
		return nil, nil
	}
	delete(g.collections[collection], key)

	return &doc, nil
}

func cloneDocument(doc storage.Document) storage.Document {
	doc.Content = slices.Clone(doc.Content)
	return doc
}
