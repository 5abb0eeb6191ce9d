//go:build integration && mysql

package mysql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/auth"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/user"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/platform/migrations"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
)

// Integration test against MySQL to ensure migrations, triggers and the
// stored procedure work with real persistence.
func TestIntegrationMySQL(t *testing.T) {
	_ = godotenv.Load() // allow .env for local runs
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set; skipping MySQL integration")
	}

	ctx := context.Background()
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db.DB); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	store := New(db, nil)
	username := fmt.Sprintf("it_%d", time.Now().UnixNano())

	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	acct := user.Account{Username: username, PasswordHash: hash, CountyState: "will il"}
	if err := store.CreateUser(ctx, acct); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := store.CreateUser(ctx, acct); err != storage.ErrDuplicate {
		t.Fatalf("duplicate user: expected ErrDuplicate, got %v", err)
	}

	rec := yield.Record{
		Username:        username,
		CropType:        "corn",
		MeasurementDate: "2024-06",
		CountyState:     "will il",
		YieldAcre:       180,
	}
	if err := store.CreateYield(ctx, rec); err != nil {
		t.Fatalf("create yield: %v", err)
	}

	// The insert trigger must have written an audit row.
	logs, err := store.ListAuditLogs(ctx, username, 10)
	if err != nil {
		t.Fatalf("audit logs: %v", err)
	}
	if len(logs) != 1 || logs[0].ActionType != "INSERT" {
		t.Fatalf("expected one INSERT audit entry, got %+v", logs)
	}

	rows, err := store.CropComparison(ctx, username, "will il")
	if err != nil {
		t.Fatalf("crop comparison procedure: %v", err)
	}
	if len(rows) != 1 || rows[0].CropType != "corn" {
		t.Fatalf("unexpected comparison rows: %+v", rows)
	}
}
