// Package reference serves the read-only county, soil and climate data
// the dashboard renders.
package reference

import (
	"context"
	"strings"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/climate"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/county"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/soil"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
)

// Service reads reference data from a ReferenceStore.
type Service struct {
	store storage.ReferenceStore
}

// New creates the reference service.
func New(store storage.ReferenceStore) *Service {
	return &Service{store: store}
}

// Counties lists every county.
func (s *Service) Counties(ctx context.Context) ([]county.County, error) {
	return s.store.ListCounties(ctx)
}

// SoilData returns the soil profiles recorded for a county.
func (s *Service) SoilData(ctx context.Context, countyState string) ([]soil.Profile, error) {
	if strings.TrimSpace(countyState) == "" {
		return nil, apperrors.Validation("county and state are required")
	}
	return s.store.GetSoilData(ctx, countyState)
}

// AvailableDates returns the distinct measurement dates with climate data
// for a county.
func (s *Service) AvailableDates(ctx context.Context, countyState string) ([]string, error) {
	if strings.TrimSpace(countyState) == "" {
		return nil, apperrors.Validation("county and state are required")
	}
	return s.store.ListClimateDates(ctx, countyState)
}

// ClimateData returns the climate observations for a county and date.
func (s *Service) ClimateData(ctx context.Context, countyState, measurementDate string) ([]climate.Observation, error) {
	if strings.TrimSpace(countyState) == "" || strings.TrimSpace(measurementDate) == "" {
		return nil, apperrors.Validation("county_state and measurement_date are required")
	}
	return s.store.GetClimateData(ctx, countyState, measurementDate)
}
