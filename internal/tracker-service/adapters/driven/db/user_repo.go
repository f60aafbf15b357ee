package db

import (
	"context"
	"errors"
	"fmt"

	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (ur *UserRepo) Create(ctx context.Context, user models.User) (int64, error) {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := ur.db.conn.QueryRow(ctx, q, user.Email).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return 0, myerrors.ErrEmailRegistered
	}

	q = `INSERT INTO users (uid, name, email, password_hash, role, college_id, route_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int64
	row := ur.db.conn.QueryRow(ctx, q,
		user.UID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CollegeID,
		user.RouteNumber,
	)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert user: %v", err)
	}

	return id, nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	q := `
		SELECT
			u.id,
			u.uid,
			u.name,
			u.email,
			u.password_hash,
			u.role,
			u.college_id,
			u.route_number,
			r.id AS route_id,
			u.created_at
		FROM
			users u
		LEFT JOIN routes r ON u.route_number = r.route_number
		WHERE
			u.email = $1
	`

	var u models.User
	err := ur.db.conn.QueryRow(ctx, q, email).Scan(
		&u.ID,
		&u.UID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CollegeID,
		&u.RouteNumber,
		&u.RouteID,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, myerrors.ErrUnknownEmail
		}
		return models.User{}, err
	}

	return u, nil
}

func (ur *UserRepo) ListDrivers(ctx context.Context) ([]models.User, error) {
	q := `SELECT id, uid, name, college_id FROM users WHERE role = 'driver' ORDER BY name`
	rows, err := ur.db.conn.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.UID, &u.Name, &u.CollegeID); err != nil {
			return nil, err
		}
		drivers = append(drivers, u)
	}
	return drivers, rows.Err()
}
