package db

import (
	"context"
	"fmt"

	"bus-tracker/internal/tracker-service/core/domain/models"
)

type RouteRepo struct {
	db *DB
}

func NewRouteRepo(db *DB) *RouteRepo {
	return &RouteRepo{db: db}
}

func (rr *RouteRepo) Create(ctx context.Context, route models.Route) (int64, error) {
	q := `INSERT INTO routes (route_number, stops) VALUES ($1, $2) RETURNING id`
	var id int64
	if err := rr.db.conn.QueryRow(ctx, q, route.RouteNumber, route.Stops).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert route: %v", err)
	}
	return id, nil
}

func (rr *RouteRepo) List(ctx context.Context) ([]models.Route, error) {
	q := `SELECT id, route_number, stops FROM routes ORDER BY route_number`
	rows, err := rr.db.conn.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		if err := rows.Scan(&r.ID, &r.RouteNumber, &r.Stops); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}
