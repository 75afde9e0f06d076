package model

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMergeRetainsAndProtects(t *testing.T) {
	rec := Record{"id": "a", "name": "Old", "address": "Street 1", "createdAt": "t0"}

	merged := rec.Merge(Record{"name": "New", "id": "b", "createdAt": "t1", "phone": "555"})

	assert.Equal(t, "a", merged.ID())
	assert.Equal(t, "t0", merged[FieldCreatedAt])
	assert.Equal(t, "New", merged["name"])
	assert.Equal(t, "Street 1", merged["address"])
	assert.Equal(t, "555", merged["phone"])
	assert.Equal(t, "Old", rec["name"], "receiver must be left untouched")
}

func TestRecordNormalize(t *testing.T) {
	rec := Record{"_id": "remote-1", "name": "X"}.Normalize()
	assert.Equal(t, "remote-1", rec.ID())

	rec = Record{"_id": "remote-1", "id": "local-1"}.Normalize()
	assert.Equal(t, "local-1", rec.ID())

	assert.Nil(t, Record(nil).Normalize())
}

func TestRecordNormalizeNumericID(t *testing.T) {
	rec := Record{"id": float64(1234567), "name": "X"}.Normalize()
	assert.Equal(t, "1234567", rec.ID())

	rec = Record{"_id": float64(42)}.Normalize()
	assert.Equal(t, "42", rec.ID())

	outlet, err := FromRecord[Outlet](Record{"id": float64(7), "name": "X"}.Normalize())
	assert.NoError(t, err)
	assert.Equal(t, "7", outlet.ID)
}

func TestRecordWithoutMetadata(t *testing.T) {
	rec := Record{"id": "a", "_id": "a", "createdAt": "t", "updatedAt": "u", "name": "X"}
	assert.Equal(t, Record{"name": "X"}, rec.WithoutMetadata())
}

func TestTypedRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 123, time.UTC)
	rec := Record{
		"id":        "abc",
		"name":      "Downtown",
		"address":   "1 Main St",
		"createdAt": created.Format(TimestampLayout),
	}

	outlet, err := FromRecord[Outlet](rec)
	require.NoError(t, err)
	assert.Equal(t, "abc", outlet.ID)
	require.NotNil(t, outlet.CreatedAt)
	assert.True(t, created.Equal(*outlet.CreatedAt))
	assert.Nil(t, outlet.UpdatedAt)

	// omitempty keeps partial updates partial
	back, err := ToRecord(Outlet{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, Record{"name": "Renamed"}, back)
}

func TestOperationMethod(t *testing.T) {
	assert.Equal(t, http.MethodGet, OpList.Method())
	assert.Equal(t, http.MethodPost, OpCreate.Method())
	assert.Equal(t, http.MethodPut, OpUpdate.Method())
	assert.Equal(t, http.MethodDelete, OpDelete.Method())
	assert.Equal(t, "/outlets", ResourceOutlets.Path())
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Outlet{Name: "A", Address: "B"}.Validate())
	assert.Len(t, Outlet{}.Validate(), 2)

	assert.Empty(t, Discount{Name: "Ten", Type: DiscountPercentage, Value: 10}.Validate())
	assert.Len(t, Discount{Name: "Bad", Type: DiscountPercentage, Value: 150}.Validate(), 1)
	assert.Len(t, Discount{Name: "Bad", Type: "bogo", Value: 1}.Validate(), 1)
	assert.Empty(t, Discount{Name: "Five off", Type: DiscountFixed, Value: 5}.Validate())
}
