// Package reports builds the aggregate views shown on the dashboard.
package reports

import (
	"context"
	"strings"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/report"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

// comparisonRowCap bounds the admin comparison to its two headline crops.
const comparisonRowCap = 2

// Service computes report aggregates over a ReportStore.
type Service struct {
	store storage.ReportStore
	log   *logger.Logger
}

// New creates the reports service.
func New(store storage.ReportStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("reports")
	}
	return &Service{store: store, log: log}
}

// CropClimateSummary returns the user's average yield per crop alongside
// the average precipitation of the counties they grew it in.
func (s *Service) CropClimateSummary(ctx context.Context, username string) ([]report.CropClimateRow, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.Validation("username is required")
	}
	return s.store.CropClimateSummary(ctx, username)
}

// EnvAverages returns per-county soil and climate averages. An empty
// countyState covers every county.
func (s *Service) EnvAverages(ctx context.Context, countyState string) ([]report.EnvAverages, error) {
	return s.store.EnvAverages(ctx, countyState)
}

// AdminCropComparison compares the user's average yields against the
// county-wide averages, truncated to at most two rows.
func (s *Service) AdminCropComparison(ctx context.Context, username, countyState string) ([]report.CropComparisonRow, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(countyState) == "" {
		return nil, apperrors.Validation("username and county_state are required")
	}
	rows, err := s.store.CropComparison(ctx, username, countyState)
	if err != nil {
		return nil, err
	}
	if len(rows) > comparisonRowCap {
		rows = rows[:comparisonRowCap]
	}
	return rows, nil
}
