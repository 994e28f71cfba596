package service

import (
	"context"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/apperr"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/repository"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the clock used to stamp updated_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type entity[T any] interface {
	*T
	RecordMeta() *model.Meta
}

// records implements the request operations shared by every entity.
type records[T any, PT entity[T]] struct {
	coll  *repository.Collection[T, PT]
	label string
	now   func() time.Time
}

func newRecords[T any, PT entity[T]](gw storage.Gateway, table, label string, opts []Option) records[T, PT] {
	o := newOptions(opts)
	return records[T, PT]{
		coll:  repository.NewCollection[T, PT](gw, table),
		label: label,
		now:   o.now,
	}
}

func (r records[T, PT]) list(ctx context.Context) ([]T, error) {
	items, err := r.coll.List(ctx)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return items, nil
}

func (r records[T, PT]) get(ctx context.Context, id string) (T, error) {
	var zero T

	key, ok := model.KeyFor(r.coll.Name(), id)
	if !ok {
		return zero, r.notFound(id)
	}

	item, err := r.coll.Get(ctx, key)
	if err != nil {
		return zero, apperr.Database(err)
	}
	if item == nil {
		return zero, r.notFound(id)
	}
	return *item, nil
}

func (r records[T, PT]) create(ctx context.Context, v T) (T, error) {
	var zero T

	item, err := r.coll.Create(ctx, v)
	if err != nil {
		return zero, apperr.Database(err)
	}
	if item == nil {
		return zero, apperr.InternalErr.WithMsgf("Failed to create %s record", strings.ToLower(r.label))
	}
	return *item, nil
}

// update loads the record at id, applies merge and stamps updated_at with
// the current time even when merge changed nothing.
func (r records[T, PT]) update(ctx context.Context, id string, merge func(T) T) (T, error) {
	var zero T

	existing, err := r.get(ctx, id)
	if err != nil {
		return zero, err
	}

	merged := merge(existing)
	now := r.now().UTC()
	PT(&merged).RecordMeta().UpdatedAt = &now

	key := PT(&existing).RecordMeta().ID.Key
	item, err := r.coll.Update(ctx, key, merged)
	if err != nil {
		return zero, apperr.Database(err)
	}
	if item == nil {
		return zero, apperr.InternalErr.WithMsgf("Failed to update %s record", strings.ToLower(r.label))
	}
	return *item, nil
}

func (r records[T, PT]) delete(ctx context.Context, id string) error {
	key, ok := model.KeyFor(r.coll.Name(), id)
	if !ok {
		return r.notFound(id)
	}

	item, err := r.coll.Delete(ctx, key)
	if err != nil {
		return apperr.Database(err)
	}
	if item == nil {
		return r.notFound(id)
	}
	return nil
}

func (r records[T, PT]) notFound(id string) error {
	return apperr.NotFoundErr.WithMsgf("%s with id '%s' not found", r.label, id)
}
