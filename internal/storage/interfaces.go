// Package storage defines the persistence contracts for the agri-vision
// service. Implementations: memory (tests, prototyping) and mysql
// (production).
package storage

import (
	"context"
	"errors"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/climate"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/county"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/report"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/soil"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/user"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert would violate a uniqueness
// constraint, e.g. a taken username.
var ErrDuplicate = errors.New("record already exists")

// UserStore persists farmer accounts.
type UserStore interface {
	// UserExists reports whether the username is taken.
	UserExists(ctx context.Context, username string) (bool, error)
	// CreateUser inserts a new account. The existence check and insert run
	// in one transaction so two concurrent signups with the same username
	// cannot both succeed; the loser gets ErrDuplicate.
	CreateUser(ctx context.Context, acct user.Account) error
	// GetUser returns the account including its password hash, or
	// ErrNotFound.
	GetUser(ctx context.Context, username string) (user.Account, error)
	// UpdateUserCounty changes the account's county within a transaction.
	UpdateUserCounty(ctx context.Context, username, countyState string) error
}

// ReferenceStore reads the pre-seeded county, soil and climate tables.
type ReferenceStore interface {
	ListCounties(ctx context.Context) ([]county.County, error)
	GetSoilData(ctx context.Context, countyState string) ([]soil.Profile, error)
	// ListClimateDates returns the distinct measurement dates recorded for
	// a county.
	ListClimateDates(ctx context.Context, countyState string) ([]string, error)
	GetClimateData(ctx context.Context, countyState, measurementDate string) ([]climate.Observation, error)
}

// YieldStore persists crop-yield records and reads the trigger-populated
// audit log.
type YieldStore interface {
	ListYieldsByUsername(ctx context.Context, username string) ([]yield.Record, error)
	CreateYield(ctx context.Context, rec yield.Record) error
	// UpdateYield sets the yield value for the record matching the natural
	// key and returns the number of rows affected. Zero rows is not an
	// error; the caller decides how to surface it.
	UpdateYield(ctx context.Context, key yield.Key, yieldAcre float64) (int64, error)
	// DeleteYield removes the record matching the natural key. Same
	// zero-rows contract as UpdateYield.
	DeleteYield(ctx context.Context, key yield.Key) (int64, error)
	// DeleteYieldByID removes a single record by surrogate id.
	DeleteYieldByID(ctx context.Context, id int64) (int64, error)
	// ListAuditLogs returns up to limit audit entries for the user, newest
	// first. Implementations clamp limit to [1, 1000].
	ListAuditLogs(ctx context.Context, username string, limit int) ([]yield.AuditEntry, error)
}

// ReportStore runs the multi-table aggregate reads. Implementations
// execute these at REPEATABLE READ so aggregates do not see phantom rows.
type ReportStore interface {
	// CropClimateSummary joins the user's average yield per crop against
	// the average precipitation of the counties involved.
	CropClimateSummary(ctx context.Context, username string) ([]report.CropClimateRow, error)
	// EnvAverages joins soil and climate per county. An empty countyState
	// covers all counties.
	EnvAverages(ctx context.Context, countyState string) ([]report.EnvAverages, error)
	// CropComparison invokes the GetCropComparison stored procedure and
	// returns its rows in order.
	CropComparison(ctx context.Context, username, countyState string) ([]report.CropComparisonRow, error)
}
