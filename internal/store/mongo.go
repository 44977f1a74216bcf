package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo implements Store on top of a mongo database handle.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) Find(ctx context.Context, collection string, filter bson.M, opts *FindOptions, out any) error {
	fo := options.Find()
	if opts != nil {
		if opts.Sort != nil {
			fo.SetSort(opts.Sort)
		}
		if opts.Skip > 0 {
			fo.SetSkip(opts.Skip)
		}
		if opts.Limit > 0 {
			fo.SetLimit(opts.Limit)
		}
		if opts.Projection != nil {
			fo.SetProjection(opts.Projection)
		}
	}
	cur, err := m.db.Collection(collection).Find(ctx, filter, fo)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M, opts *FindOptions, out any) error {
	fo := options.FindOne()
	if opts != nil {
		if opts.Sort != nil {
			fo.SetSort(opts.Sort)
		}
		if opts.Projection != nil {
			fo.SetProjection(opts.Projection)
		}
	}
	err := m.db.Collection(collection).FindOne(ctx, filter, fo).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *Mongo) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return m.db.Collection(collection).CountDocuments(ctx, filter)
}

func (m *Mongo) Distinct(ctx context.Context, collection, field string, filter bson.M) ([]any, error) {
	var vals bson.A
	if err := m.db.Collection(collection).Distinct(ctx, field, filter).Decode(&vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) error {
	_, err := m.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

func (m *Mongo) Update(ctx context.Context, collection string, filter bson.M, update bson.M) (int64, error) {
	res, err := m.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (m *Mongo) Delete(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := m.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
