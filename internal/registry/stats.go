package registry

import (
	"context"
	"sort"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// Statistics is the global snapshot computed fresh on every request. The
// underlying counts come from separate store queries, so a concurrent write
// can make the snapshot point-in-time inconsistent; that is accepted.
type Statistics struct {
	TotalMembers    int64            `json:"total_members"`
	ActiveMembers   int64            `json:"active_members"`
	InactiveMembers int64            `json:"inactive_members"`
	MaleCount       int64            `json:"male_count"`
	FemaleCount     int64            `json:"female_count"`
	BaptizedCount   int64            `json:"baptized_count"`
	WithHolySpirit  int64            `json:"with_holy_spirit"`
	AgeGroups       map[string]int   `json:"age_groups"`
	ServiceStats    []ServiceStat    `json:"service_stats"`
	MaritalStats    map[string]int64 `json:"marital_stats"`
	SocialStats     map[string]int64 `json:"social_stats"`
}

// ServiceStat counts the currently active holders of one service type.
type ServiceStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

const serviceStatsLimit = 15

// Statistics scans the active member set and computes the snapshot.
func (r *Registry) Statistics(ctx context.Context) (*Statistics, error) {
	total, err := r.store.Count(ctx, store.Members, bson.M{})
	if err != nil {
		return nil, err
	}
	active, err := r.store.Count(ctx, store.Members, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	male, err := r.store.Count(ctx, store.Members, bson.M{"is_active": true, "gender": "male"})
	if err != nil {
		return nil, err
	}
	female, err := r.store.Count(ctx, store.Members, bson.M{"is_active": true, "gender": "female"})
	if err != nil {
		return nil, err
	}
	baptized, err := r.store.Count(ctx, store.Members, bson.M{"is_active": true, "baptism_date": bson.M{"$ne": nil}})
	if err != nil {
		return nil, err
	}
	holySpirit, err := r.store.Count(ctx, store.Members, bson.M{"is_active": true, "holy_spirit": true})
	if err != nil {
		return nil, err
	}

	ageGroups, err := r.ageGroups(ctx)
	if err != nil {
		return nil, err
	}
	serviceStats, err := r.serviceStats(ctx)
	if err != nil {
		return nil, err
	}
	maritalStats, err := r.referenceDistribution(ctx, models.RefMaritalStatus, "marital_status_id")
	if err != nil {
		return nil, err
	}
	socialStats, err := r.referenceDistribution(ctx, models.RefSocialStatus, "social_status_id")
	if err != nil {
		return nil, err
	}

	return &Statistics{
		TotalMembers:    total,
		ActiveMembers:   active,
		InactiveMembers: total - active,
		MaleCount:       male,
		FemaleCount:     female,
		BaptizedCount:   baptized,
		WithHolySpirit:  holySpirit,
		AgeGroups:       ageGroups,
		ServiceStats:    serviceStats,
		MaritalStats:    maritalStats,
		SocialStats:     socialStats,
	}, nil
}

// ageGroups buckets every active member by current-year minus birth-year.
// The month and day are deliberately ignored here (known imprecision of up
// to one year); anything without a parseable 4-digit year counts as unknown.
// All buckets are present in the result even at zero.
func (r *Registry) ageGroups(ctx context.Context) (map[string]int, error) {
	groups := map[string]int{"0-18": 0, "19-30": 0, "31-45": 0, "46-60": 0, "60+": 0, "unknown": 0}

	var members []struct {
		BirthDate *string `bson:"birth_date"`
	}
	err := r.store.Find(ctx, store.Members, bson.M{"is_active": true}, &store.FindOptions{
		Projection: bson.M{"birth_date": 1},
	}, &members)
	if err != nil {
		return nil, err
	}

	currentYear := r.now().Year()
	for _, m := range members {
		if m.BirthDate == nil || len(*m.BirthDate) < 4 {
			groups["unknown"]++
			continue
		}
		year, err := strconv.Atoi((*m.BirthDate)[:4])
		if err != nil {
			groups["unknown"]++
			continue
		}
		age := currentYear - year
		switch {
		case age < 19:
			groups["0-18"]++
		case age < 31:
			groups["19-30"]++
		case age < 46:
			groups["31-45"]++
		case age < 61:
			groups["46-60"]++
		default:
			groups["60+"]++
		}
	}
	return groups, nil
}

// serviceStats counts currently held services per type, skips empty types,
// and keeps the top entries sorted by count (stable, so ties stay in store
// order).
func (r *Registry) serviceStats(ctx context.Context) ([]ServiceStat, error) {
	var types []models.ServiceType
	if err := r.store.Find(ctx, store.ServiceTypes, bson.M{}, &store.FindOptions{Limit: 100}, &types); err != nil {
		return nil, err
	}

	stats := make([]ServiceStat, 0, len(types))
	for _, st := range types {
		count, err := r.store.Count(ctx, store.Services, bson.M{
			"service_type_id": st.OriginalID,
			"end_date":        nil,
		})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			stats = append(stats, ServiceStat{Name: st.NameUkr, Count: count})
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	if len(stats) > serviceStatsLimit {
		stats = stats[:serviceStatsLimit]
	}
	return stats, nil
}

// referenceDistribution counts active members per reference key and emits
// the distribution keyed by the table's label, dropping zero-count keys.
// Labels are resolved at read time here, independent of the snapshot labels
// stored on the member documents.
func (r *Registry) referenceDistribution(ctx context.Context, refType, field string) (map[string]int64, error) {
	table, err := r.resolver.Table(ctx, refType)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64)
	for key, label := range table {
		count, err := r.store.Count(ctx, store.Members, bson.M{"is_active": true, field: key})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			stats[label] = count
		}
	}
	return stats, nil
}
