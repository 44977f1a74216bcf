// Package store defines the document-store contract the rest of the system
// is written against, with a MongoDB implementation for production and an
// in-memory implementation for tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection names.
const (
	Members       = "members"
	Families      = "families"
	Children      = "children"
	Services      = "services"
	ServiceTypes  = "service_types"
	Districts     = "districts"
	Presbyters    = "presbyters"
	Deacons       = "deacons"
	ReferenceData = "reference_data"
	Users         = "users"
	Events        = "events"
	ChurchInfo    = "church_info"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("store: document not found")

// FindOptions narrows or orders a Find/FindOne.
type FindOptions struct {
	Sort       bson.D
	Skip       int64
	Limit      int64
	Projection bson.M
}

// Store is the record-store contract. Filters are plain bson.M documents;
// out parameters are pointers to structs or slices of structs with bson tags.
type Store interface {
	Find(ctx context.Context, collection string, filter bson.M, opts *FindOptions, out any) error
	FindOne(ctx context.Context, collection string, filter bson.M, opts *FindOptions, out any) error
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	Distinct(ctx context.Context, collection, field string, filter bson.M) ([]any, error)
	Insert(ctx context.Context, collection string, doc any) error
	Update(ctx context.Context, collection string, filter bson.M, update bson.M) (matched int64, err error)
	Delete(ctx context.Context, collection string, filter bson.M) (deleted int64, err error)
}
