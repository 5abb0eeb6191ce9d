package reference

import (
	"context"
	"sort"
	"testing"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/climate"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/county"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage/memory"
)

func TestCounties(t *testing.T) {
	store := memory.New()
	store.SeedCounties(county.County{CountyState: "will il"}, county.County{CountyState: "cook il"})

	list, err := New(store).Counties(context.Background())
	if err != nil {
		t.Fatalf("counties: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 counties, got %d", len(list))
	}
}

func TestAvailableDatesSetEquality(t *testing.T) {
	store := memory.New()
	store.SeedClimate(
		climate.Observation{CountyState: "will il", MeasurementDate: "2024-01"},
		climate.Observation{CountyState: "will il", MeasurementDate: "2024-02"},
		climate.Observation{CountyState: "cook il", MeasurementDate: "2024-03"},
	)

	dates, err := New(store).AvailableDates(context.Background(), "will il")
	if err != nil {
		t.Fatalf("available dates: %v", err)
	}
	sort.Strings(dates)
	if len(dates) != 2 || dates[0] != "2024-01" || dates[1] != "2024-02" {
		t.Fatalf("expected {2024-01, 2024-02}, got %v", dates)
	}
}

func TestClimateDataRequiresBothParams(t *testing.T) {
	svc := New(memory.New())
	if _, err := svc.ClimateData(context.Background(), "will il", ""); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.ClimateData(context.Background(), "", "2024-01"); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
