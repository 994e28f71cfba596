package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

type entity[T any] interface {
	*T
	RecordMeta() *model.Meta
}

// Collection is a typed view of one collection in a storage.Gateway. Entities
// are stored without their Meta, which is rebuilt from the stored document.
type Collection[T any, PT entity[T]] struct {
	gw   storage.Gateway
	name string
}

func NewCollection[T any, PT entity[T]](gw storage.Gateway, name string) *Collection[T, PT] {
	return &Collection[T, PT]{
		gw:   gw,
		name: name,
	}
}

// Name returns the collection name.
func (c *Collection[T, PT]) Name() string {
	return c.name
}

func (c *Collection[T, PT]) List(ctx context.Context) ([]T, error) {
	docs, err := c.gw.List(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (c *Collection[T, PT]) Get(ctx context.Context, key string) (*T, error) {
	doc, err := c.gw.Get(ctx, c.name, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	}
	return c.decodeOptional(doc)
}

// Create stores v under a new key. Any Meta already set on v is ignored.
func (c *Collection[T, PT]) Create(ctx context.Context, v T) (*T, error) {
	content, err := c.encode(v)
	if err != nil {
		return nil, err
	}

	doc, err := c.gw.Create(ctx, c.name, content)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", c.name, err)
	}
	return c.decodeOptional(doc)
}

// Update replaces the record at key with v, stamping v's UpdatedAt.
func (c *Collection[T, PT]) Update(ctx context.Context, key string, v T) (*T, error) {
	var updatedAt time.Time
	if ts := PT(&v).RecordMeta().UpdatedAt; ts != nil {
		updatedAt = *ts
	}

	content, err := c.encode(v)
	if err != nil {
		return nil, err
	}

	doc, err := c.gw.Update(ctx, c.name, key, content, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.name, err)
	}
	return c.decodeOptional(doc)
}

func (c *Collection[T, PT]) Delete(ctx context.Context, key string) (*T, error) {
	doc, err := c.gw.Delete(ctx, c.name, key)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", c.name, err)
	}
	return c.decodeOptional(doc)
}

func (c *Collection[T, PT]) encode(v T) (json.RawMessage, error) {
	*PT(&v).RecordMeta() = model.Meta{}

	content, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s content: %w", c.name, err)
	}
	return content, nil
}

func (c *Collection[T, PT]) decodeOptional(doc *storage.Document) (*T, error) {
	if doc == nil {
		return nil, nil
	}

	v, err := c.decode(*doc)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Collection[T, PT]) decode(doc storage.Document) (T, error) {
	var v T
	if err := json.Unmarshal(doc.Content, &v); err != nil {
		return v, fmt.Errorf("unmarshal %s %s: %w", c.name, doc.ID.Key, err)
	}

	id := doc.ID
	createdAt := doc.CreatedAt
	updatedAt := doc.UpdatedAt
	*PT(&v).RecordMeta() = model.Meta{
		ID:        &id,
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}

	return v, nil
}
