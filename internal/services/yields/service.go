// Package yields implements crop-yield submission, maintenance and
// audit-log reads.
package yields

import (
	"context"
	"strings"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

// Service coordinates yield operations over a YieldStore.
type Service struct {
	store storage.YieldStore
	log   *logger.Logger
}

// New creates the yields service.
func New(store storage.YieldStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("yields")
	}
	return &Service{store: store, log: log}
}

// Create records a new yield submission. The audit-log entry is written
// by a database trigger, not by this code path.
func (s *Service) Create(ctx context.Context, rec yield.Record) error {
	if strings.TrimSpace(rec.Username) == "" ||
		strings.TrimSpace(rec.CropType) == "" ||
		strings.TrimSpace(rec.MeasurementDate) == "" ||
		strings.TrimSpace(rec.CountyState) == "" {
		return apperrors.Validation("all fields must be filled")
	}
	if rec.YieldAcre <= 0 {
		return apperrors.Validation("yieldacre must be a positive number")
	}
	if err := s.store.CreateYield(ctx, rec); err != nil {
		return err
	}
	s.log.WithFields(map[string]interface{}{
		"username":  rec.Username,
		"crop_type": rec.CropType,
	}).Info("yield created")
	return nil
}

// ListByUser returns every yield record the user submitted.
func (s *Service) ListByUser(ctx context.Context, username string) ([]yield.Record, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.Validation("username is required")
	}
	return s.store.ListYieldsByUsername(ctx, username)
}

// Update sets a new yield value for the record matching the natural key
// and returns how many rows matched. Zero matches is a soft failure the
// caller surfaces, not an error.
func (s *Service) Update(ctx context.Context, key yield.Key, yieldAcre float64) (int64, error) {
	if err := validateKey(key); err != nil {
		return 0, err
	}
	if yieldAcre <= 0 {
		return 0, apperrors.Validation("yieldacre must be a positive number")
	}
	return s.store.UpdateYield(ctx, key, yieldAcre)
}

// Delete removes the record matching the natural key. Same zero-match
// contract as Update.
func (s *Service) Delete(ctx context.Context, key yield.Key) (int64, error) {
	if err := validateKey(key); err != nil {
		return 0, err
	}
	return s.store.DeleteYield(ctx, key)
}

// DeleteByID removes a single record by its surrogate id. This is the
// alternate addressing mode alongside the natural-key path.
func (s *Service) DeleteByID(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, apperrors.Validation("invalid yield id")
	}
	return s.store.DeleteYieldByID(ctx, id)
}

// AuditLogs returns the user's audit entries, newest first. The store
// clamps limit to [1, 1000]; zero means the default of 10.
func (s *Service) AuditLogs(ctx context.Context, username string, limit int) ([]yield.AuditEntry, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.Validation("username is required")
	}
	return s.store.ListAuditLogs(ctx, username, limit)
}

func validateKey(key yield.Key) error {
	if strings.TrimSpace(key.Username) == "" ||
		strings.TrimSpace(key.CropType) == "" ||
		strings.TrimSpace(key.MeasurementDate) == "" ||
		strings.TrimSpace(key.CountyState) == "" {
		return apperrors.Validation("username, crop_type, measurement_date and county_state are required")
	}
	return nil
}
