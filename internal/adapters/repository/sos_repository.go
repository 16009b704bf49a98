package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

const sosColumns = "id, room_no, COALESCE(triggered_by::text, ''), COALESCE(triggered_by_name, ''), is_anonymous, created_at"

type SOSRepository struct {
	db *sql.DB
}

var _ ports.SOSRepository = (*SOSRepository)(nil)

func NewSOSRepository(db *sql.DB) *SOSRepository {
	return &SOSRepository{db: db}
}

// Create inserts the alert and returns it with the store-assigned timestamp.
// The insert fires the sos_alerts notify trigger that feeds the realtime
// listener.
func (r *SOSRepository) Create(ctx context.Context, alert domain.SOSAlert) (*domain.SOSAlert, error) {
	alert.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sos_alerts (id, room_no, triggered_by, triggered_by_name, is_anonymous)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5)
		RETURNING created_at`,
		alert.ID,
		alert.RoomNo,
		alert.TriggeredBy,
		alert.TriggeredByName,
		alert.IsAnonymous,
	).Scan(&alert.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *SOSRepository) FindByID(ctx context.Context, id string) (*domain.SOSAlert, error) {
	var a domain.SOSAlert
	err := r.db.QueryRowContext(ctx,
		"SELECT "+sosColumns+" FROM sos_alerts WHERE id = $1", id,
	).Scan(&a.ID, &a.RoomNo, &a.TriggeredBy, &a.TriggeredByName, &a.IsAnonymous, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SOSRepository) ListAll(ctx context.Context) ([]domain.SOSAlert, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sosColumns+" FROM sos_alerts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (r *SOSRepository) ListSince(ctx context.Context, after time.Time) ([]domain.SOSAlert, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sosColumns+" FROM sos_alerts WHERE created_at > $1 ORDER BY created_at", after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (r *SOSRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sos_alerts").Scan(&count)
	return count, err
}

func scanAlerts(rows *sql.Rows) ([]domain.SOSAlert, error) {
	var alerts []domain.SOSAlert
	for rows.Next() {
		var a domain.SOSAlert
		if err := rows.Scan(&a.ID, &a.RoomNo, &a.TriggeredBy, &a.TriggeredByName, &a.IsAnonymous, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
