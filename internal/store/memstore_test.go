package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type person struct {
	ID    int     `bson:"id"`
	Name  string  `bson:"name"`
	Born  *string `bson:"born"`
	Alive bool    `bson:"alive"`
}

func strptr(s string) *string { return &s }

func seedPeople(t *testing.T, m *Mem) {
	t.Helper()
	ctx := context.Background()
	people := []person{
		{ID: 3, Name: "Carol", Born: strptr("1990-01-01"), Alive: true},
		{ID: 1, Name: "alice", Born: strptr("1985-06-15"), Alive: true},
		{ID: 2, Name: "Bob", Born: nil, Alive: false},
	}
	for _, p := range people {
		require.NoError(t, m.Insert(ctx, "people", p))
	}
}

func TestMemFindOne(t *testing.T) {
	m := NewMem()
	seedPeople(t, m)

	var p person
	require.NoError(t, m.FindOne(context.Background(), "people", bson.M{"id": 2}, nil, &p))
	assert.Equal(t, "Bob", p.Name)
	assert.Nil(t, p.Born)

	err := m.FindOne(context.Background(), "people", bson.M{"id": 99}, nil, &p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemFindSortSkipLimit(t *testing.T) {
	m := NewMem()
	seedPeople(t, m)
	ctx := context.Background()

	var all []person
	require.NoError(t, m.Find(ctx, "people", bson.M{}, &FindOptions{
		Sort: bson.D{{Key: "id", Value: 1}},
	}, &all))
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})

	var page []person
	require.NoError(t, m.Find(ctx, "people", bson.M{}, &FindOptions{
		Sort: bson.D{{Key: "id", Value: -1}},
		Skip: 1, Limit: 1,
	}, &page))
	require.Len(t, page, 1)
	assert.Equal(t, 2, page[0].ID)

	var none []person
	require.NoError(t, m.Find(ctx, "people", bson.M{}, &FindOptions{Skip: 10}, &none))
	assert.Empty(t, none)
}

func TestMemFilterOperators(t *testing.T) {
	m := NewMem()
	seedPeople(t, m)
	ctx := context.Background()

	// $ne nil keeps only documents whose field holds a real value.
	var born []person
	require.NoError(t, m.Find(ctx, "people", bson.M{"born": bson.M{"$ne": nil}}, nil, &born))
	assert.Len(t, born, 2)

	// nil equality matches the null field.
	var unborn []person
	require.NoError(t, m.Find(ctx, "people", bson.M{"born": nil}, nil, &unborn))
	require.Len(t, unborn, 1)
	assert.Equal(t, "Bob", unborn[0].Name)

	// Case-insensitive regex.
	var named []person
	require.NoError(t, m.Find(ctx, "people", bson.M{"name": bson.M{"$regex": "ALI", "$options": "i"}}, nil, &named))
	require.Len(t, named, 1)
	assert.Equal(t, "alice", named[0].Name)

	// String range, the shape used for ISO date windows.
	var ranged []person
	require.NoError(t, m.Find(ctx, "people", bson.M{
		"born": bson.M{"$gte": "1985-01-01", "$lt": "1990-01-01"},
	}, nil, &ranged))
	require.Len(t, ranged, 1)
	assert.Equal(t, "alice", ranged[0].Name)

	var in []person
	require.NoError(t, m.Find(ctx, "people", bson.M{"id": bson.M{"$in": []int{1, 3}}}, nil, &in))
	assert.Len(t, in, 2)

	var or []person
	require.NoError(t, m.Find(ctx, "people", bson.M{
		"$or": []bson.M{{"id": 1}, {"name": "Bob"}},
	}, nil, &or))
	assert.Len(t, or, 2)
}

func TestMemCount(t *testing.T) {
	m := NewMem()
	seedPeople(t, m)

	n, err := m.Count(context.Background(), "people", bson.M{"alive": true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = m.Count(context.Background(), "people", bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMemDistinct(t *testing.T) {
	m := NewMem()
	ctx := context.Background()
	for _, id := range []int{5, 5, 7, 5} {
		require.NoError(t, m.Insert(ctx, "links", bson.M{"member_id": id}))
	}

	vals, err := m.Distinct(ctx, "links", "member_id", bson.M{})
	require.NoError(t, err)
	assert.Len(t, vals, 2)
}

func TestMemUpdateSetUnset(t *testing.T) {
	m := NewMem()
	seedPeople(t, m)
	ctx := context.Background()

	matched, err := m.Update(ctx, "people", bson.M{"id": 1}, bson.M{"$set": bson.M{"alive": false, "name": "Alice"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	var p person
	require.NoError(t, m.FindOne(ctx, "people", bson.M{"id": 1}, nil, &p))
	assert.Equal(t, "Alice", p.Name)
	assert.False(t, p.Alive)

	matched, err = m.Update(ctx, "people", bson.M{"id": 3}, bson.M{"$unset": bson.M{"born": ""}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
	require.NoError(t, m.FindOne(ctx, "people", bson.M{"id": 3}, nil, &p))
	assert.Nil(t, p.Born)

	matched, err = m.Update(ctx, "people", bson.M{"id": 99}, bson.M{"$set": bson.M{"alive": true}})
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestMemDelete(t *testing.T) {
	m := NewMem()
	seedPeople(t, m)
	ctx := context.Background()

	deleted, err := m.Delete(ctx, "people", bson.M{"id": 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	n, _ := m.Count(ctx, "people", bson.M{})
	assert.Equal(t, int64(2), n)

	deleted, err = m.Delete(ctx, "people", bson.M{"id": 2})
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
