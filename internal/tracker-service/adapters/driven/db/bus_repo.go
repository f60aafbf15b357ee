package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

// BusRepo is both the trip state store (trip flag, last position) and the
// administrative fleet repo (create, list, assign). Detail reads go through
// the v_bus_details view, writes hit the base table.
type BusRepo struct {
	db *DB
}

func NewBusRepo(db *DB) *BusRepo {
	return &BusRepo{db: db}
}

const busDetailColumns = `
		bus_id,
		bus_number,
		route_id,
		route_number,
		driver_uid,
		driver_name,
		is_trip_active,
		lat,
		lng,
		last_update
`

func scanBusDetail(row pgx.Row) (models.Bus, error) {
	var b models.Bus
	err := row.Scan(
		&b.ID,
		&b.BusNumber,
		&b.RouteID,
		&b.RouteNumber,
		&b.DriverUID,
		&b.DriverName,
		&b.IsTripActive,
		&b.Lat,
		&b.Lng,
		&b.LastUpdate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bus{}, myerrors.ErrNotFound
		}
		return models.Bus{}, err
	}
	return b, nil
}

// ======================= trip state store =======================

func (br *BusRepo) GetBusByDriver(ctx context.Context, driverUID string) (models.Bus, error) {
	q := `SELECT ` + busDetailColumns + ` FROM v_bus_details WHERE driver_uid = $1`
	return scanBusDetail(br.db.conn.QueryRow(ctx, q, driverUID))
}

func (br *BusRepo) GetBusByRoute(ctx context.Context, routeNumber string) (models.Bus, error) {
	q := `SELECT ` + busDetailColumns + ` FROM v_bus_details WHERE route_number = $1`
	return scanBusDetail(br.db.conn.QueryRow(ctx, q, routeNumber))
}

func (br *BusRepo) SetTripActive(ctx context.Context, busID int64, active bool) (models.Bus, error) {
	q := `UPDATE buses SET is_trip_active = $1 WHERE id = $2 RETURNING id`
	var id int64
	if err := br.db.conn.QueryRow(ctx, q, active, busID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bus{}, myerrors.ErrNotFound
		}
		return models.Bus{}, err
	}

	detail := `SELECT ` + busDetailColumns + ` FROM v_bus_details WHERE bus_id = $1`
	return scanBusDetail(br.db.conn.QueryRow(ctx, detail, busID))
}

func (br *BusRepo) SetLastPosition(ctx context.Context, busID int64, lat, lng float64, at time.Time) error {
	q := `UPDATE buses SET lat = $1, lng = $2, last_update = $3 WHERE id = $4 RETURNING id`
	var id int64
	if err := br.db.conn.QueryRow(ctx, q, lat, lng, at, busID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrNotFound
		}
		return err
	}
	return nil
}

// ======================= fleet =======================

func (br *BusRepo) CreateBus(ctx context.Context, busNumber string) (int64, error) {
	q := `INSERT INTO buses (bus_number) VALUES ($1) RETURNING id`
	var id int64
	if err := br.db.conn.QueryRow(ctx, q, busNumber).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert bus: %v", err)
	}
	return id, nil
}

func (br *BusRepo) ListBusDetails(ctx context.Context) ([]models.Bus, error) {
	q := `SELECT ` + busDetailColumns + ` FROM v_bus_details ORDER BY bus_number`
	rows, err := br.db.conn.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buses []models.Bus
	for rows.Next() {
		b, err := scanBusDetail(rows)
		if err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

// AssignDriver rebinds driver and route to the bus in one transaction,
// replacing the original stored procedure. Any bus the driver already
// holds and any bus already bound to the route are released first, which
// is what keeps one driver per bus and one bus per route.
func (br *BusRepo) AssignDriver(ctx context.Context, driverUID string, busID int64, routeNumber string) error {
	tx, err := br.db.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) // safe rollback if not committed

	var routeID int64
	q := `SELECT id FROM routes WHERE route_number = $1`
	if err := tx.QueryRow(ctx, q, routeNumber).Scan(&routeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrNotFound
		}
		return err
	}

	var driverExists bool
	q = `SELECT EXISTS (SELECT 1 FROM users WHERE uid = $1 AND role = 'driver')`
	if err := tx.QueryRow(ctx, q, driverUID).Scan(&driverExists); err != nil {
		return err
	}
	if !driverExists {
		return myerrors.ErrNotFound
	}

	q = `UPDATE buses SET driver_uid = NULL WHERE driver_uid = $1`
	if _, err := tx.Exec(ctx, q, driverUID); err != nil {
		return err
	}

	q = `UPDATE buses SET route_id = NULL WHERE route_id = $1`
	if _, err := tx.Exec(ctx, q, routeID); err != nil {
		return err
	}

	q = `UPDATE buses SET driver_uid = $1, route_id = $2 WHERE id = $3 RETURNING id`
	var id int64
	if err := tx.QueryRow(ctx, q, driverUID, routeID, busID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrNotFound
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}
