package property

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nilaw2017/rental-server/app/echoServer/validation"
	"github.com/nilaw2017/rental-server/model"
)

func TestPropertyReq_ToModel(t *testing.T) {
	var req PropertyReq
	require.NoError(t, json.Unmarshal([]byte(`{
		"host_id": 12,
		"title": "Loft",
		"city": "Lisbon",
		"price": 80,
		"listing_type": "RENT",
		"rental_period": "DAY",
		"available_from": "2030-01-01",
		"max_guests": 2
	}`), &req))
	require.NoError(t, validation.New().Engine().Struct(req))

	p, err := req.toModel()
	require.NoError(t, err)
	require.Equal(t, int64(12), p.HostID)
	require.Equal(t, model.PeriodDay, *p.RentalPeriod)
	require.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), *p.AvailableFrom)
	require.Nil(t, p.AvailableTo)
	require.True(t, p.IsAvailable)
	require.Equal(t, []int64{}, p.AmenityIDs)
}

func TestPropertyReq_WithoutHostID(t *testing.T) {
	req := PropertyReq{Title: "Loft", City: "Lisbon", ListingType: "SALE", Price: 1}
	p, err := req.toModel()
	require.NoError(t, err)
	require.Zero(t, p.HostID)
}

func TestPropertyReq_RejectsNonPositiveHostID(t *testing.T) {
	zero := int64(0)
	req := PropertyReq{HostID: &zero, Title: "Loft", City: "Lisbon", ListingType: "SALE"}
	require.Error(t, validation.New().Engine().Struct(req))
}
