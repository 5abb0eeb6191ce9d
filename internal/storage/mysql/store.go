// Package mysql implements the storage interfaces against MySQL using
// sqlx. Every write and every multi-table reporting read runs inside a
// REPEATABLE READ transaction, committed on success and rolled back on
// any error; single-table reads use the pool's default isolation.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/climate"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/county"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/report"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/soil"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/user"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

// mysqlDuplicateEntry is the server error code for a unique-key violation.
const mysqlDuplicateEntry = 1062

// Store implements the storage interfaces backed by MySQL.
type Store struct {
	db  *sqlx.DB
	log *logger.Logger
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ReferenceStore = (*Store)(nil)
var _ storage.YieldStore = (*Store)(nil)
var _ storage.ReportStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewDefault("mysql")
	}
	return &Store{db: db, log: log}
}

// withTx runs fn inside a REPEATABLE READ transaction. The transaction is
// rolled back on any error and the connection is returned to the pool in
// every case.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return s.fail("begin transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return s.fail("commit transaction", err)
	}
	return nil
}

// fail logs a driver-level error and wraps it as a generic query failure.
// Sentinel errors pass through untouched so callers can branch on them.
func (s *Store) fail(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrDuplicate) {
		return err
	}
	s.log.WithError(err).WithField("op", op).Warn("query failed")
	return fmt.Errorf("query failed: %s: %w", op, err)
}

// UserStore --------------------------------------------------------------

func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM UserAccount WHERE username = ?)`, username)
	if err != nil {
		return false, s.fail("user exists", err)
	}
	return exists, nil
}

func (s *Store) CreateUser(ctx context.Context, acct user.Account) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM UserAccount WHERE username = ?)`, acct.Username); err != nil {
			return s.fail("create user: existence check", err)
		}
		if exists {
			return storage.ErrDuplicate
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO UserAccount (username, password, county_state) VALUES (?, ?, ?)`,
			acct.Username, acct.PasswordHash, acct.CountyState)
		if err != nil {
			// A concurrent signup can slip past the existence check and
			// surface here as a duplicate-key violation at commit time.
			var mysqlErr *mysqldrv.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
				return storage.ErrDuplicate
			}
			return s.fail("create user: insert", err)
		}
		return nil
	})
}

func (s *Store) GetUser(ctx context.Context, username string) (user.Account, error) {
	var acct user.Account
	err := s.db.GetContext(ctx, &acct,
		`SELECT username, password, county_state FROM UserAccount WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Account{}, storage.ErrNotFound
	}
	if err != nil {
		return user.Account{}, s.fail("get user", err)
	}
	return acct, nil
}

func (s *Store) UpdateUserCounty(ctx context.Context, username, countyState string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE UserAccount SET county_state = ? WHERE username = ?`, countyState, username)
		if err != nil {
			return s.fail("update user", err)
		}
		return nil
	})
}

// ReferenceStore ---------------------------------------------------------

func (s *Store) ListCounties(ctx context.Context) ([]county.County, error) {
	var out []county.County
	if err := s.db.SelectContext(ctx, &out, `SELECT county_state FROM Counties`); err != nil {
		return nil, s.fail("list counties", err)
	}
	return out, nil
}

func (s *Store) GetSoilData(ctx context.Context, countyState string) ([]soil.Profile, error) {
	var out []soil.Profile
	err := s.db.SelectContext(ctx, &out, `
		SELECT county_state, soil_organic_carbon_stock, bulk_density, nitrogen, soil_organic_carbon, ph
		FROM Soil
		WHERE county_state = ?`, countyState)
	if err != nil {
		return nil, s.fail("get soil data", err)
	}
	return out, nil
}

func (s *Store) ListClimateDates(ctx context.Context, countyState string) ([]string, error) {
	var out []string
	err := s.db.SelectContext(ctx, &out, `
		SELECT DISTINCT measurement_date FROM Climate WHERE county_state = ?`, countyState)
	if err != nil {
		return nil, s.fail("list climate dates", err)
	}
	return out, nil
}

func (s *Store) GetClimateData(ctx context.Context, countyState, measurementDate string) ([]climate.Observation, error) {
	var out []climate.Observation
	err := s.db.SelectContext(ctx, &out, `
		SELECT county_state, measurement_date, min_temp, max_temp, precipitation,
		       humidity, wind, solar_radiation, evapotranspiration, elevation
		FROM Climate
		WHERE county_state = ? AND measurement_date = ?`, countyState, measurementDate)
	if err != nil {
		return nil, s.fail("get climate data", err)
	}
	return out, nil
}

// YieldStore -------------------------------------------------------------

func (s *Store) ListYieldsByUsername(ctx context.Context, username string) ([]yield.Record, error) {
	var out []yield.Record
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, username, crop_type, measurement_date, county_state, yieldacre
		FROM CropYield
		WHERE username = ?`, username)
	if err != nil {
		return nil, s.fail("list yields", err)
	}
	return out, nil
}

func (s *Store) CreateYield(ctx context.Context, rec yield.Record) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO CropYield (crop_type, measurement_date, county_state, username, yieldacre)
			VALUES (?, ?, ?, ?, ?)`,
			rec.CropType, rec.MeasurementDate, rec.CountyState, rec.Username, rec.YieldAcre)
		if err != nil {
			return s.fail("create yield", err)
		}
		return nil
	})
}

func (s *Store) UpdateYield(ctx context.Context, key yield.Key, yieldAcre float64) (int64, error) {
	var affected int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE CropYield SET yieldacre = ?
			WHERE username = ? AND crop_type = ? AND measurement_date = ? AND county_state = ?`,
			yieldAcre, key.Username, key.CropType, key.MeasurementDate, key.CountyState)
		if err != nil {
			return s.fail("update yield", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

func (s *Store) DeleteYield(ctx context.Context, key yield.Key) (int64, error) {
	var affected int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM CropYield
			WHERE username = ? AND crop_type = ? AND measurement_date = ? AND county_state = ?`,
			key.Username, key.CropType, key.MeasurementDate, key.CountyState)
		if err != nil {
			return s.fail("delete yield", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

func (s *Store) DeleteYieldByID(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM CropYield WHERE id = ?`, id)
		if err != nil {
			return s.fail("delete yield by id", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

func (s *Store) ListAuditLogs(ctx context.Context, username string, limit int) ([]yield.AuditEntry, error) {
	// LIMIT is the one value the driver cannot parameterize here; clamp it
	// before formatting so nothing attacker-controlled reaches the SQL text.
	if limit == 0 {
		limit = 10
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 1000 {
		limit = 1000
	}

	query := fmt.Sprintf(`
		SELECT action_type, action_timestamp, username, crop_type, measurement_date, county_state, yieldacre
		FROM CropYield_AuditLog
		WHERE username = ?
		ORDER BY action_timestamp DESC
		LIMIT %d`, limit)

	var out []yield.AuditEntry
	if err := s.db.SelectContext(ctx, &out, query, username); err != nil {
		return nil, s.fail("list audit logs", err)
	}
	return out, nil
}

// ReportStore ------------------------------------------------------------

func (s *Store) CropClimateSummary(ctx context.Context, username string) ([]report.CropClimateRow, error) {
	var out []report.CropClimateRow
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.SelectContext(ctx, &out, `
			SELECT cy.crop_type AS crop_type,
			       AVG(cy.yieldacre) AS avg_yield,
			       (SELECT COALESCE(AVG(c.precipitation), 0) FROM Climate c
			        WHERE c.county_state IN (
			            SELECT DISTINCT cy2.county_state FROM CropYield cy2
			            WHERE cy2.username = ? AND cy2.crop_type = cy.crop_type
			        )) AS avg_precipitation
			FROM CropYield cy
			WHERE cy.username = ?
			GROUP BY cy.crop_type
			ORDER BY cy.crop_type`, username, username)
		if err != nil {
			return s.fail("crop climate summary", err)
		}
		return nil
	})
	return out, err
}

func (s *Store) EnvAverages(ctx context.Context, countyState string) ([]report.EnvAverages, error) {
	var out []report.EnvAverages
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.SelectContext(ctx, &out, `
			SELECT so.county_state AS county_state,
			       AVG(c.precipitation) AS avg_precipitation,
			       AVG(so.ph) AS avg_ph
			FROM Soil so
			JOIN Climate c ON c.county_state = so.county_state
			WHERE ? = '' OR so.county_state = ?
			GROUP BY so.county_state
			ORDER BY so.county_state`, countyState, countyState)
		if err != nil {
			return s.fail("env averages", err)
		}
		return nil
	})
	return out, err
}

func (s *Store) CropComparison(ctx context.Context, username, countyState string) ([]report.CropComparisonRow, error) {
	var out []report.CropComparisonRow
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := tx.QueryxContext(ctx, `CALL GetCropComparison(?, ?)`, username, countyState)
		if err != nil {
			return s.fail("crop comparison", err)
		}
		defer rows.Close()
		for rows.Next() {
			var row report.CropComparisonRow
			if err := rows.StructScan(&row); err != nil {
				return s.fail("crop comparison: scan", err)
			}
			out = append(out, row)
		}
		if err := rows.Err(); err != nil {
			return s.fail("crop comparison: rows", err)
		}
		return nil
	})
	return out, err
}
