package registry

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
)

// NextMemberID allocates the next stable member id: current max + 1, or 1 on
// an empty collection. Deactivated members keep their id, so ids are never
// reused.
func (r *Registry) NextMemberID(ctx context.Context) (int, error) {
	var last struct {
		OriginalID int `bson:"original_id"`
	}
	err := r.store.FindOne(ctx, store.Members, bson.M{}, &store.FindOptions{
		Sort: bson.D{{Key: "original_id", Value: -1}},
	}, &last)
	if errors.Is(err, store.ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.OriginalID + 1, nil
}
