package yields

import (
	"context"
	"testing"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage/memory"
)

var aliceCorn = yield.Record{
	Username:        "alice",
	CropType:        "corn",
	MeasurementDate: "2024-06",
	CountyState:     "will il",
	YieldAcre:       180,
}

func keyOf(rec yield.Record) yield.Key {
	return yield.Key{
		Username:        rec.Username,
		CropType:        rec.CropType,
		MeasurementDate: rec.MeasurementDate,
		CountyState:     rec.CountyState,
	}
}

func TestCreateThenListContainsRecordOnce(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if err := svc.Create(ctx, aliceCorn); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	count := 0
	for _, rec := range list {
		if rec.CropType == "corn" && rec.MeasurementDate == "2024-06" &&
			rec.CountyState == "will il" && rec.YieldAcre == 180 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the created record exactly once, found %d", count)
	}
}

func TestDeleteByNaturalKeyRemovesOnlyThatRecord(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	other := aliceCorn
	other.CropType = "soybeans"
	other.YieldAcre = 60

	if err := svc.Create(ctx, aliceCorn); err != nil {
		t.Fatalf("create corn: %v", err)
	}
	if err := svc.Create(ctx, other); err != nil {
		t.Fatalf("create soybeans: %v", err)
	}

	affected, err := svc.Delete(ctx, keyOf(aliceCorn))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	list, err := svc.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].CropType != "soybeans" {
		t.Fatalf("wrong records survived delete: %+v", list)
	}
}

func TestUpdateMissingKeyAffectsZeroRows(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	affected, err := svc.Update(ctx, keyOf(aliceCorn), 200)
	if err != nil {
		t.Fatalf("update of absent key must not error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected, got %d", affected)
	}
}

func TestDeleteByID(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	if err := svc.Create(ctx, aliceCorn); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := svc.ListByUser(ctx, "alice")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d records)", err, len(list))
	}

	affected, err := svc.DeleteByID(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("delete by id: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	if _, err := svc.DeleteByID(ctx, 0); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error for id 0, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	bad := aliceCorn
	bad.CropType = ""
	if err := svc.Create(ctx, bad); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error for missing crop, got %v", err)
	}

	bad = aliceCorn
	bad.YieldAcre = -4
	if err := svc.Create(ctx, bad); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error for negative yield, got %v", err)
	}
}

func TestAuditLogsNewestFirstAndLimited(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	rec := aliceCorn
	for _, date := range []string{"2024-01", "2024-02", "2024-03", "2024-04"} {
		rec.MeasurementDate = date
		if err := svc.Create(ctx, rec); err != nil {
			t.Fatalf("create %s: %v", date, err)
		}
	}

	logs, err := svc.AuditLogs(ctx, "alice", 3)
	if err != nil {
		t.Fatalf("audit logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i-1].ActionTimestamp < logs[i].ActionTimestamp {
			t.Fatalf("entries not in non-increasing timestamp order: %q then %q",
				logs[i-1].ActionTimestamp, logs[i].ActionTimestamp)
		}
	}
	if logs[0].MeasurementDate != "2024-04" {
		t.Fatalf("newest entry should be for 2024-04, got %q", logs[0].MeasurementDate)
	}
}
