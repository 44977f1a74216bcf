package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

func intptr(n int) *int { return &n }

func seedFamily(t *testing.T, mem *store.Mem) {
	t.Helper()
	seed(t, mem, store.Members,
		activeMember(1, "Чоловік", strptr("1980-01-01T00:00:00")),
		activeMember(2, "Дружина", strptr("1982-02-02T00:00:00")),
		activeMember(3, "Самотній", nil),
	)
	seed(t, mem, store.Families,
		models.Family{OriginalID: 10, HusbandID: intptr(1), WifeID: intptr(2)},
	)
	seed(t, mem, store.Children,
		models.Child{OriginalID: 1, FamilyID: 10, Name: "Марія", Surname: "Іванова"},
		models.Child{OriginalID: 2, FamilyID: 10, Name: "Петро", Surname: "Іванов"},
		models.Child{OriginalID: 3, FamilyID: 99, Name: "Чужа", Surname: "Дитина"},
	)
}

func TestAssembleMemberViewSpouseIsOtherSide(t *testing.T) {
	r, mem := testRegistry(time.Now())
	seedFamily(t, mem)
	ctx := context.Background()

	husband, err := r.AssembleMemberView(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, husband.Spouse)
	assert.Equal(t, 2, husband.Spouse.OriginalID)
	assert.Equal(t, "Дружина", husband.Spouse.PIB)

	wife, err := r.AssembleMemberView(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, wife.Spouse)
	assert.Equal(t, 1, wife.Spouse.OriginalID)
}

func TestAssembleMemberViewChildren(t *testing.T) {
	r, mem := testRegistry(time.Now())
	seedFamily(t, mem)

	view, err := r.AssembleMemberView(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, view.Children, 2)
	assert.Equal(t, "Марія", view.Children[0].Name)
}

func TestAssembleMemberViewNoFamily(t *testing.T) {
	r, mem := testRegistry(time.Now())
	seedFamily(t, mem)

	view, err := r.AssembleMemberView(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, view.Spouse)
	assert.Nil(t, view.Children)
	assert.NotNil(t, view.Services)
}

func TestAssembleMemberViewNotFound(t *testing.T) {
	r, _ := testRegistry(time.Now())
	_, err := r.AssembleMemberView(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceSummaries(t *testing.T) {
	r, mem := testRegistry(time.Now())
	seed(t, mem, store.ServiceTypes,
		models.ServiceType{OriginalID: 1, NameUkr: "Хор"},
		models.ServiceType{OriginalID: 2, NameUkr: "Диригент"},
	)
	seed(t, mem, store.Services,
		models.Service{OriginalID: 1, MemberOriginalID: 7, ServiceTypeID: 1, StartDate: strptr("2010-01-01T00:00:00")},
		models.Service{OriginalID: 2, MemberOriginalID: 7, ServiceTypeID: 2,
			StartDate: strptr("2005-01-01T00:00:00"), EndDate: strptr("2009-12-31T00:00:00")},
		// Dangling type id, dropped from the summary.
		models.Service{OriginalID: 3, MemberOriginalID: 7, ServiceTypeID: 99},
		models.Service{OriginalID: 4, MemberOriginalID: 8, ServiceTypeID: 1},
	)

	summaries, err := r.ServiceSummaries(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Хор", summaries[0].Name)
	assert.True(t, summaries[0].IsActive)
	assert.Equal(t, "Диригент", summaries[1].Name)
	assert.False(t, summaries[1].IsActive)
}
