package services

import (
	"net/url"
	"testing"

	"rental-admin/models"

	"github.com/stretchr/testify/assert"
)

func contractRefs() Refs {
	tenants := NewEntityCache[models.Tenant]("/inquilinos")
	tenants.Replace([]models.Tenant{
		{ID: 1, FirstName: "Ana", LastName: "Quispe"},
		{ID: 2, FirstName: "Luis", LastName: "Rojas"},
	})
	rooms := NewEntityCache[models.Room]("/cuartos")
	rooms.Replace([]models.Room{{ID: 10, Name: "A-101"}, {ID: 11, Name: "B-202"}})
	return Refs{
		RefTenants: NewReference(RefTenants, tenants, models.Tenant.FullName, FallbackUnknown),
		RefRooms:   NewReference(RefRooms, rooms, func(r models.Room) string { return r.Name }, FallbackNA),
	}
}

func ids(records []models.Contract) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterEngine_StatusFilter(t *testing.T) {
	spec := ContractPage()
	engine := FilterEngine[models.Contract]{Filters: spec.Filters, SearchFields: spec.SearchFields}
	records := []models.Contract{{ID: 1, Status: "ACTIVO"}, {ID: 2, Status: "FINALIZADO"}}

	got := engine.Apply(records, FilterState{Values: map[string]string{"estado": "ACTIVO"}}, contractRefs())
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilterEngine_FiltersCombineRegardlessOfOrder(t *testing.T) {
	spec := ContractPage()
	records := []models.Contract{
		{ID: 1, TenantID: 1, RoomID: 10, Status: "ACTIVO"},
		{ID: 2, TenantID: 1, RoomID: 11, Status: "FINALIZADO"},
		{ID: 3, TenantID: 2, RoomID: 10, Status: "ACTIVO"},
		{ID: 4, TenantID: 1, RoomID: 10, Status: "CANCELADO"},
	}
	state := FilterState{Values: map[string]string{"estado": "ACTIVO", "inquilinoId": "1"}}
	refs := contractRefs()

	forward := FilterEngine[models.Contract]{Filters: spec.Filters}
	reversed := make([]FilterDef[models.Contract], len(spec.Filters))
	for i, def := range spec.Filters {
		reversed[len(spec.Filters)-1-i] = def
	}
	backward := FilterEngine[models.Contract]{Filters: reversed}

	assert.Equal(t, []int64{1}, ids(forward.Apply(records, state, refs)))
	assert.Equal(t, ids(forward.Apply(records, state, refs)), ids(backward.Apply(records, state, refs)))
}

func TestFilterEngine_SearchIgnoresFiltersAndKeepsOrder(t *testing.T) {
	spec := ContractPage()
	engine := FilterEngine[models.Contract]{Filters: spec.Filters, SearchFields: spec.SearchFields}
	records := []models.Contract{
		{ID: 3, TenantID: 2, RoomID: 10, Status: "FINALIZADO"},
		{ID: 1, TenantID: 1, RoomID: 11, Status: "ACTIVO"},
		{ID: 2, TenantID: 2, RoomID: 11, Status: "ACTIVO"},
	}
	state := FilterState{Values: map[string]string{"estado": "ACTIVO"}, Search: "ROJAS"}

	assert.Equal(t, []int64{3, 2}, ids(engine.Apply(records, state, contractRefs())))

	state.Search = ""
	assert.Equal(t, []int64{1, 2}, ids(engine.Apply(records, state, contractRefs())))
}

func TestFilterStateFromQuery(t *testing.T) {
	spec := ContractPage()
	q := url.Values{"estado": {" ACTIVO "}, "q": {"  ana "}, "otro": {"x"}, "cuartoId": {""}}

	st := FilterStateFromQuery(spec.Filters, q)
	assert.Equal(t, map[string]string{"estado": "ACTIVO"}, st.Values)
	assert.Equal(t, "ana", st.Search)
	assert.True(t, st.Active())
	assert.Equal(t, "estado=ACTIVO&q=ana", st.Query().Encode())
	assert.False(t, FilterState{Values: map[string]string{}}.Active())
}
