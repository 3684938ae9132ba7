package repositories

import (
	"database/sql"
	"fmt"

	intconfig "checkout-backend/internal/config"
	intdb "checkout-backend/internal/db"
	"checkout-backend/internal/domain"
)

// ConfirmationRecord is a persisted booking confirmation row. The in-memory
// engine owns the checkout lifecycle; only the confirmed outcome is durable.
type ConfirmationRecord struct {
	ID                 int64
	SessionID          string
	BookingID          string
	ConfirmationNumber string
	BookingDate        string
	Status             string
	PaymentStatus      string
	BookingType        string
	TotalPrice         float64
}

type ConfirmationRepo struct {
	DB *sql.DB
}

func (r ConfirmationRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ConfirmationRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	if intdb.HasTable(db, "booking_confirmations") {
		// older deployments predate the booking_type column
		if !intdb.HasColumn(db, "booking_confirmations", "booking_type") {
			_, err := db.Exec(`ALTER TABLE booking_confirmations ADD COLUMN booking_type VARCHAR(32) NOT NULL DEFAULT 'activity'`)
			return err
		}
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS booking_confirmations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	session_id VARCHAR(100) NULL,
	booking_id VARCHAR(100) NOT NULL,
	confirmation_number VARCHAR(100) NOT NULL,
	booking_date VARCHAR(32) NOT NULL,
	status VARCHAR(32) NOT NULL,
	payment_status VARCHAR(32) NOT NULL,
	booking_type VARCHAR(32) NOT NULL,
	total_price DECIMAL(12,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_confirmation (confirmation_number),
	KEY idx_session (session_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// Insert stores a confirmation; re-recording the same confirmation number
// updates the payment status instead of duplicating the row.
func (r ConfirmationRepo) Insert(rec ConfirmationRecord) error {
	if rec.ConfirmationNumber == "" {
		return domain.ValidationError{Field: "confirmation_number", Msg: "is required"}
	}
	if err := r.EnsureTable(); err != nil {
		return err
	}

	db := r.db()
	_, err := db.Exec(`
		INSERT INTO booking_confirmations
			(session_id, booking_id, confirmation_number, booking_date, status, payment_status, booking_type, total_price)
		VALUES (?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE status=VALUES(status), payment_status=VALUES(payment_status)`,
		intdb.NullIfEmpty(rec.SessionID),
		rec.BookingID,
		rec.ConfirmationNumber,
		rec.BookingDate,
		rec.Status,
		rec.PaymentStatus,
		rec.BookingType,
		rec.TotalPrice,
	)
	if err != nil {
		return domain.InternalError{Msg: "insert booking confirmation failed", Err: err}
	}
	return nil
}

func (r ConfirmationRepo) GetByNumber(confirmationNumber string) (ConfirmationRecord, error) {
	var rec ConfirmationRecord
	db := r.db()
	if db == nil {
		return rec, domain.InternalError{Msg: "db not available"}
	}

	err := db.QueryRow(`
		SELECT id, COALESCE(session_id,''), booking_id, confirmation_number, booking_date, status, payment_status, booking_type, total_price
		FROM booking_confirmations
		WHERE confirmation_number = ?`, confirmationNumber).Scan(
		&rec.ID,
		&rec.SessionID,
		&rec.BookingID,
		&rec.ConfirmationNumber,
		&rec.BookingDate,
		&rec.Status,
		&rec.PaymentStatus,
		&rec.BookingType,
		&rec.TotalPrice,
	)
	if err == sql.ErrNoRows {
		return rec, domain.NotFoundError{Resource: "booking confirmation"}
	}
	if err != nil {
		return rec, domain.InternalError{Msg: "query booking confirmation failed", Err: err}
	}
	return rec, nil
}

func (r ConfirmationRepo) ListBySession(sessionID string) ([]ConfirmationRecord, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`
		SELECT id, COALESCE(session_id,''), booking_id, confirmation_number, booking_date, status, payment_status, booking_type, total_price
		FROM booking_confirmations
		WHERE session_id = ?
		ORDER BY id DESC`, sessionID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list booking confirmations failed", Err: err}
	}
	defer rows.Close()

	out := []ConfirmationRecord{}
	for rows.Next() {
		var rec ConfirmationRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.BookingID,
			&rec.ConfirmationNumber,
			&rec.BookingDate,
			&rec.Status,
			&rec.PaymentStatus,
			&rec.BookingType,
			&rec.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan booking confirmation: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
