package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	intdb "bikie/internal/db"
	"bikie/internal/domain"
	"bikie/internal/domain/models"
)

const vehicleColumns = `id, name, type, image, hourly_rate, daily_rate, available, featured,
	COALESCE(description, ''), COALESCE(specifications, '{}'), COALESCE(slots, '[]')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (models.Vehicle, error) {
	var (
		v           models.Vehicle
		vType       string
		daily       sql.NullFloat64
		specs, slot []byte
	)
	if err := row.Scan(&v.ID, &v.Name, &vType, &v.Image, &v.HourlyRate, &daily,
		&v.Available, &v.Featured, &v.Description, &specs, &slot); err != nil {
		return models.Vehicle{}, err
	}
	v.Type = models.VehicleType(vType)
	if daily.Valid {
		d := daily.Float64
		v.DailyRate = &d
	}
	if err := json.Unmarshal(specs, &v.Specifications); err != nil {
		return models.Vehicle{}, fmt.Errorf("vehicle %s specifications: %w", v.ID, err)
	}
	if err := json.Unmarshal(slot, &v.Slots); err != nil {
		return models.Vehicle{}, fmt.Errorf("vehicle %s slots: %w", v.ID, err)
	}
	return v, nil
}

func (s MySQLStore) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := s.db().QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s MySQLStore) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	row := s.db().QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=? LIMIT 1`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", ID: id, Err: err}
	}
	return v, err
}

func (s MySQLStore) SaveVehicle(ctx context.Context, v models.Vehicle) error {
	specs, err := json.Marshal(v.Specifications)
	if err != nil {
		return err
	}
	slots := v.Slots
	if slots == nil {
		slots = []models.Slot{}
	}
	slotJSON, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	_, err = s.db().ExecContext(ctx, `
		INSERT INTO vehicles (id, name, type, image, hourly_rate, daily_rate, available, featured, description, specifications, slots)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			name=VALUES(name), type=VALUES(type), image=VALUES(image),
			hourly_rate=VALUES(hourly_rate), daily_rate=VALUES(daily_rate),
			available=VALUES(available), featured=VALUES(featured),
			description=VALUES(description), specifications=VALUES(specifications), slots=VALUES(slots)
	`, v.ID, v.Name, string(v.Type), v.Image, v.HourlyRate, intdb.NullFloat(v.DailyRate),
		v.Available, v.Featured, intdb.NullIfEmpty(v.Description), string(specs), string(slotJSON))
	return err
}

func (s MySQLStore) DeleteVehicle(ctx context.Context, id string) error {
	res, err := s.db().ExecContext(ctx, `DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle", ID: id}
	}
	return nil
}
