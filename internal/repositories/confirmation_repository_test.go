package repositories

import (
	"testing"

	"checkout-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConfirmationInsertCreatesTableWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("booking_confirmations").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS booking_confirmations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO booking_confirmations").
		WithArgs("cs-1", "BKG-9", "TRV-20260910-001234", "2026-09-10 12:00:00", "confirmed", "paid", "mixed", 4300.0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := ConfirmationRepo{DB: db}
	rec := ConfirmationRecord{
		SessionID:          "cs-1",
		BookingID:          "BKG-9",
		ConfirmationNumber: "TRV-20260910-001234",
		BookingDate:        "2026-09-10 12:00:00",
		Status:             "confirmed",
		PaymentStatus:      "paid",
		BookingType:        "mixed",
		TotalPrice:         4300,
	}
	if err := repo.Insert(rec); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmationInsertSkipsDDLWhenTableExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("booking_confirmations").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("booking_confirmations"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("booking_confirmations", "booking_type").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("booking_type"))
	mock.ExpectExec("INSERT INTO booking_confirmations").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := ConfirmationRepo{DB: db}
	if err := repo.Insert(ConfirmationRecord{ConfirmationNumber: "TRV-1"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmationInsertRejectsEmptyNumber(t *testing.T) {
	repo := ConfirmationRepo{}
	err := repo.Insert(ConfirmationRecord{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirmationGetByNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "session_id", "booking_id", "confirmation_number", "booking_date", "status", "payment_status", "booking_type", "total_price"}
	mock.ExpectQuery("SELECT id, COALESCE").WithArgs("TRV-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "cs-1", "BKG-9", "TRV-1", "2026-09-10 12:00:00", "confirmed", "paid", "activity", 2500.0))

	repo := ConfirmationRepo{DB: db}
	rec, err := repo.GetByNumber("TRV-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec.BookingID != "BKG-9" || rec.TotalPrice != 2500 {
		t.Fatalf("unexpected record %+v", rec)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmationGetByNumberNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "session_id", "booking_id", "confirmation_number", "booking_date", "status", "payment_status", "booking_type", "total_price"}
	mock.ExpectQuery("SELECT id, COALESCE").WithArgs("TRV-missing").
		WillReturnRows(sqlmock.NewRows(cols))

	repo := ConfirmationRepo{DB: db}
	if _, err := repo.GetByNumber("TRV-missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
