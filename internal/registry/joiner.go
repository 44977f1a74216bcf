package registry

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

// AssembleMemberView fetches a member and attaches its service history,
// spouse and children. Returns store.ErrNotFound when the member id is
// unknown. When no family record references the member, the spouse and
// children fields stay absent.
func (r *Registry) AssembleMemberView(ctx context.Context, memberID int) (*models.MemberView, error) {
	var member models.Member
	if err := r.store.FindOne(ctx, store.Members, bson.M{"original_id": memberID}, nil, &member); err != nil {
		return nil, err
	}

	services, err := r.ServiceSummaries(ctx, memberID)
	if err != nil {
		return nil, err
	}
	view := &models.MemberView{Member: member, Services: services}

	var family models.Family
	err = r.store.FindOne(ctx, store.Families, bson.M{
		"$or": []bson.M{{"husband_id": memberID}, {"wife_id": memberID}},
	}, nil, &family)
	if errors.Is(err, store.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	// The spouse is whichever side of the family record is not this member.
	spouseID := family.HusbandID
	if family.HusbandID != nil && *family.HusbandID == memberID {
		spouseID = family.WifeID
	}
	if spouseID != nil {
		var spouse models.SpouseRef
		err := r.store.FindOne(ctx, store.Members, bson.M{"original_id": *spouseID}, &store.FindOptions{
			Projection: bson.M{"_id": 0, "pib": 1, "original_id": 1},
		}, &spouse)
		if err == nil {
			view.Spouse = &spouse
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	var children []models.Child
	if err := r.store.Find(ctx, store.Children, bson.M{"family_id": family.OriginalID}, &store.FindOptions{Limit: 20}, &children); err != nil {
		return nil, err
	}
	view.Children = children
	return view, nil
}

// ServiceSummaries resolves a member's service records against the
// service-type table, in store order. Records pointing at an unknown type
// are dropped, matching the legacy data which contains dangling type ids.
func (r *Registry) ServiceSummaries(ctx context.Context, memberID int) ([]models.ServiceSummary, error) {
	var services []models.Service
	err := r.store.Find(ctx, store.Services, bson.M{"member_original_id": memberID}, &store.FindOptions{Limit: 100}, &services)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ServiceSummary, 0, len(services))
	for _, s := range services {
		var st models.ServiceType
		err := r.store.FindOne(ctx, store.ServiceTypes, bson.M{"original_id": s.ServiceTypeID}, nil, &st)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ServiceSummary{
			Name:      st.NameUkr,
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
			IsActive:  s.EndDate == nil,
		})
	}
	return summaries, nil
}
