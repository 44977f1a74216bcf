package registry

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// Resolver resolves reference-table keys into localized labels. A missing
// table or key is not an error: it means no reference data has been imported
// yet, and callers get an empty label.
type Resolver struct {
	store store.Store
}

func NewResolver(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve returns the label stored under key in the named reference table,
// or "" when the table or the key is absent.
func (r *Resolver) Resolve(ctx context.Context, refType, key string) string {
	table, err := r.Table(ctx, refType)
	if err != nil {
		return ""
	}
	return table[key]
}

// Table returns the full key→label map of a reference table. A missing table
// yields a nil map, not an error.
func (r *Resolver) Table(ctx context.Context, refType string) (map[string]string, error) {
	var ref models.ReferenceTable
	err := r.store.FindOne(ctx, store.ReferenceData, bson.M{"type": refType}, nil, &ref)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ref.Data, nil
}

// Resolve delegates to the registry's resolver. Handlers use this to
// denormalize labels onto a member at creation time.
func (r *Registry) Resolve(ctx context.Context, refType, key string) string {
	return r.resolver.Resolve(ctx, refType, key)
}
