package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookmap/internal/domain/entity"
)

func fullRecord() Record {
	return Record{
		ID:          "CNV_000001",
		Name:        "글벗서점",
		RoadAddress: "서울특별시 마포구 와우산로 35",
		Latitude:    "37.5532",
		Longitude:   "126.9292",
		TopCategory: "서점",
		SubCategory: "중고서점",
		Phone:       "0233334444",
		OpenTime:    "0.375",
		CloseTime:   "0.9375",
		ClosedDays:  "매주 일요일",
		Option:      "주차 가능",
		Extra:       "1층 매장",
	}
}

func TestAdapt_FullRecord(t *testing.T) {
	got := Adapt(fullRecord())

	assert.Equal(t, "ext:CNV_000001", got.ID)
	assert.Equal(t, "글벗서점", got.Name)
	assert.Equal(t, "서울특별시 마포구 와우산로 35", got.Address)
	assert.Equal(t, 37.5532, got.Latitude)
	assert.Equal(t, 126.9292, got.Longitude)
	assert.Equal(t, "중고서점", got.Category)
	assert.Equal(t, "02-3333-4444", got.Phone)
	assert.Equal(t, "09:00", got.OpenTime)
	assert.Equal(t, "22:30", got.CloseTime)
	assert.Equal(t, "매주 일요일", got.ClosedDays)
	assert.Equal(t, "1층 매장", got.Description)
	assert.False(t, got.UserAdded)
	assert.Empty(t, got.CreatedBy)
	assert.Nil(t, got.CreatedAt)
}

func TestAdapt_UnparsableCoordinatesFallBack(t *testing.T) {
	rec := fullRecord()
	rec.Latitude = "unknown"
	rec.Longitude = ""

	got := Adapt(rec)
	assert.Equal(t, entity.FallbackLatitude, got.Latitude)
	assert.Equal(t, entity.FallbackLongitude, got.Longitude)
}

func TestAdapt_CategoryFallbackChain(t *testing.T) {
	t.Run("sub category wins", func(t *testing.T) {
		rec := fullRecord()
		assert.Equal(t, "중고서점", Adapt(rec).Category)
	})

	t.Run("top category when sub is empty", func(t *testing.T) {
		rec := fullRecord()
		rec.SubCategory = ""
		assert.Equal(t, "서점", Adapt(rec).Category)
	})

	t.Run("default label when both are empty", func(t *testing.T) {
		rec := fullRecord()
		rec.SubCategory = ""
		rec.TopCategory = ""
		assert.Equal(t, entity.DefaultCategory, Adapt(rec).Category)
	})
}

func TestAdapt_DescriptionPrefersExtra(t *testing.T) {
	rec := fullRecord()
	assert.Equal(t, "1층 매장", Adapt(rec).Description)

	rec.Extra = ""
	assert.Equal(t, "주차 가능", Adapt(rec).Description)

	rec.Option = ""
	assert.Empty(t, Adapt(rec).Description)
}

func TestAdapt_AbsentOptionalFieldsStayAbsent(t *testing.T) {
	rec := Record{ID: "CNV_000002", Name: "이름", RoadAddress: "주소"}
	got := Adapt(rec)

	assert.Empty(t, got.Phone)
	assert.Empty(t, got.OpenTime)
	assert.Empty(t, got.CloseTime)
	assert.Empty(t, got.ClosedDays)
	assert.Empty(t, got.Description)
	assert.Equal(t, entity.DefaultCategory, got.Category)
}
