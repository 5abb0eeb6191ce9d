// Package memory provides a thread-safe in-memory implementation of the
// storage interfaces. It mirrors the MySQL store's semantics closely
// enough for service and handler tests, including the audit-log side
// effect the production database implements with triggers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/climate"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/county"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/report"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/soil"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/user"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
)

// timestampLayout is fixed-width so lexicographic order matches
// chronological order, like a MySQL DATETIME(6) column rendered as text.
const timestampLayout = "2006-01-02 15:04:05.000000"

type auditRow struct {
	entry yield.AuditEntry
	seq   int64
}

// Store is the in-memory store.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	nextSeq  int64
	users    map[string]user.Account
	counties []county.County
	soils    []soil.Profile
	climate  []climate.Observation
	yields   []yield.Record
	audit    []auditRow
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ReferenceStore = (*Store)(nil)
var _ storage.YieldStore = (*Store)(nil)
var _ storage.ReportStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextID: 1,
		users:  make(map[string]user.Account),
	}
}

// Seed helpers load reference data that production assumes pre-seeded.

func (s *Store) SeedCounties(list ...county.County) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counties = append(s.counties, list...)
}

func (s *Store) SeedSoil(profiles ...soil.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.soils = append(s.soils, profiles...)
}

func (s *Store) SeedClimate(observations ...climate.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.climate = append(s.climate, observations...)
}

// UserStore --------------------------------------------------------------

func (s *Store) UserExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *Store) CreateUser(_ context.Context, acct user.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[acct.Username]; ok {
		return storage.ErrDuplicate
	}
	s.users[acct.Username] = acct
	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (user.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.users[username]
	if !ok {
		return user.Account{}, storage.ErrNotFound
	}
	return acct, nil
}

func (s *Store) UpdateUserCounty(_ context.Context, username, countyState string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.users[username]
	if !ok {
		return storage.ErrNotFound
	}
	acct.CountyState = countyState
	s.users[username] = acct
	return nil
}

// ReferenceStore ---------------------------------------------------------

func (s *Store) ListCounties(_ context.Context) ([]county.County, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]county.County, len(s.counties))
	copy(out, s.counties)
	return out, nil
}

func (s *Store) GetSoilData(_ context.Context, countyState string) ([]soil.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []soil.Profile
	for _, p := range s.soils {
		if p.CountyState == countyState {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListClimateDates(_ context.Context, countyState string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, obs := range s.climate {
		if obs.CountyState == countyState && !seen[obs.MeasurementDate] {
			seen[obs.MeasurementDate] = true
			out = append(out, obs.MeasurementDate)
		}
	}
	return out, nil
}

func (s *Store) GetClimateData(_ context.Context, countyState, measurementDate string) ([]climate.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []climate.Observation
	for _, obs := range s.climate {
		if obs.CountyState == countyState && obs.MeasurementDate == measurementDate {
			out = append(out, obs)
		}
	}
	return out, nil
}

// YieldStore -------------------------------------------------------------

func (s *Store) ListYieldsByUsername(_ context.Context, username string) ([]yield.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []yield.Record
	for _, rec := range s.yields {
		if rec.Username == username {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) CreateYield(_ context.Context, rec yield.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.yields = append(s.yields, rec)
	s.appendAuditLocked("INSERT", rec)
	return nil
}

func (s *Store) UpdateYield(_ context.Context, key yield.Key, yieldAcre float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for i, rec := range s.yields {
		if matchesKey(rec, key) {
			s.yields[i].YieldAcre = yieldAcre
			s.appendAuditLocked("UPDATE", s.yields[i])
			affected++
		}
	}
	return affected, nil
}

func (s *Store) DeleteYield(_ context.Context, key yield.Key) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	kept := s.yields[:0]
	for _, rec := range s.yields {
		if matchesKey(rec, key) {
			s.appendAuditLocked("DELETE", rec)
			affected++
			continue
		}
		kept = append(kept, rec)
	}
	s.yields = kept
	return affected, nil
}

func (s *Store) DeleteYieldByID(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.yields {
		if rec.ID == id {
			s.appendAuditLocked("DELETE", rec)
			s.yields = append(s.yields[:i], s.yields[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Store) ListAuditLogs(_ context.Context, username string, limit int) ([]yield.AuditEntry, error) {
	if limit == 0 {
		limit = 10
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 1000 {
		limit = 1000
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []auditRow
	for _, row := range s.audit {
		if row.entry.Username == username {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].entry.ActionTimestamp != rows[j].entry.ActionTimestamp {
			return rows[i].entry.ActionTimestamp > rows[j].entry.ActionTimestamp
		}
		return rows[i].seq > rows[j].seq
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]yield.AuditEntry, len(rows))
	for i, row := range rows {
		out[i] = row.entry
	}
	return out, nil
}

// appendAuditLocked mimics the database triggers that snapshot mutated
// yield rows into CropYield_AuditLog.
func (s *Store) appendAuditLocked(action string, rec yield.Record) {
	s.nextSeq++
	s.audit = append(s.audit, auditRow{
		seq: s.nextSeq,
		entry: yield.AuditEntry{
			ActionType:      action,
			ActionTimestamp: time.Now().UTC().Format(timestampLayout),
			Username:        rec.Username,
			CropType:        rec.CropType,
			MeasurementDate: rec.MeasurementDate,
			CountyState:     rec.CountyState,
			YieldAcre:       rec.YieldAcre,
		},
	})
}

// ReportStore ------------------------------------------------------------

func (s *Store) CropClimateSummary(_ context.Context, username string) ([]report.CropClimateRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type agg struct {
		yieldSum   float64
		yieldCount int
		counties   map[string]bool
	}
	byCrop := make(map[string]*agg)
	for _, rec := range s.yields {
		if rec.Username != username {
			continue
		}
		a := byCrop[rec.CropType]
		if a == nil {
			a = &agg{counties: make(map[string]bool)}
			byCrop[rec.CropType] = a
		}
		a.yieldSum += rec.YieldAcre
		a.yieldCount++
		a.counties[rec.CountyState] = true
	}

	crops := make([]string, 0, len(byCrop))
	for crop := range byCrop {
		crops = append(crops, crop)
	}
	sort.Strings(crops)

	var out []report.CropClimateRow
	for _, crop := range crops {
		a := byCrop[crop]
		var precipSum float64
		var precipCount int
		for _, obs := range s.climate {
			if a.counties[obs.CountyState] {
				precipSum += obs.Precipitation
				precipCount++
			}
		}
		row := report.CropClimateRow{
			CropType: crop,
			AvgYield: a.yieldSum / float64(a.yieldCount),
		}
		if precipCount > 0 {
			row.AvgPrecipitation = precipSum / float64(precipCount)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Store) EnvAverages(_ context.Context, countyState string) ([]report.EnvAverages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counties := make(map[string]bool)
	for _, p := range s.soils {
		if countyState == "" || p.CountyState == countyState {
			counties[p.CountyState] = true
		}
	}
	names := make([]string, 0, len(counties))
	for name := range counties {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []report.EnvAverages
	for _, name := range names {
		var phSum float64
		var phCount int
		for _, p := range s.soils {
			if p.CountyState == name {
				phSum += p.PH
				phCount++
			}
		}
		var precipSum float64
		var precipCount int
		for _, obs := range s.climate {
			if obs.CountyState == name {
				precipSum += obs.Precipitation
				precipCount++
			}
		}
		row := report.EnvAverages{CountyState: name}
		if phCount > 0 {
			row.AvgPH = phSum / float64(phCount)
		}
		if precipCount > 0 {
			row.AvgPrecipitation = precipSum / float64(precipCount)
		}
		out = append(out, row)
	}
	return out, nil
}

// CropComparison approximates the GetCropComparison stored procedure:
// the user's average yield per crop against the all-user average for the
// same crop in the given county.
func (s *Store) CropComparison(_ context.Context, username, countyState string) ([]report.CropComparisonRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type agg struct {
		userSum, allSum     float64
		userCount, allCount int
	}
	byCrop := make(map[string]*agg)
	for _, rec := range s.yields {
		if !strings.EqualFold(rec.CountyState, countyState) {
			continue
		}
		a := byCrop[rec.CropType]
		if a == nil {
			a = &agg{}
			byCrop[rec.CropType] = a
		}
		a.allSum += rec.YieldAcre
		a.allCount++
		if rec.Username == username {
			a.userSum += rec.YieldAcre
			a.userCount++
		}
	}

	crops := make([]string, 0, len(byCrop))
	for crop := range byCrop {
		crops = append(crops, crop)
	}
	sort.Strings(crops)

	var out []report.CropComparisonRow
	for _, crop := range crops {
		a := byCrop[crop]
		if a.userCount == 0 {
			continue
		}
		out = append(out, report.CropComparisonRow{
			CropType:      crop,
			UserAvgYield:  a.userSum / float64(a.userCount),
			AdminAvgYield: a.allSum / float64(a.allCount),
		})
	}
	return out, nil
}

func matchesKey(rec yield.Record, key yield.Key) bool {
	return rec.Username == key.Username &&
		rec.CropType == key.CropType &&
		rec.MeasurementDate == key.MeasurementDate &&
		rec.CountyState == key.CountyState
}
