package db

import (
	"context"
	"errors"
	"fmt"

	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

type ComplaintRepo struct {
	db *DB
}

func NewComplaintRepo(db *DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

const complaintQuery = `
	SELECT
		c.id,
		c.user_id,
		u.name,
		c.category,
		c.description,
		c.status,
		c.created_at
	FROM
		complaints c
	JOIN users u ON u.id = c.user_id
`

func (cr *ComplaintRepo) Create(ctx context.Context, c models.Complaint) (int64, error) {
	q := `INSERT INTO complaints (user_id, category, description, status)
		  VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := cr.db.conn.QueryRow(ctx, q, c.UserID, c.Category, c.Description, c.Status).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert complaint: %v", err)
	}
	return id, nil
}

func (cr *ComplaintRepo) List(ctx context.Context) ([]models.Complaint, error) {
	return cr.list(ctx, complaintQuery+` ORDER BY c.created_at DESC`)
}

func (cr *ComplaintRepo) ListByUser(ctx context.Context, userID int64) ([]models.Complaint, error) {
	return cr.list(ctx, complaintQuery+` WHERE c.user_id = $1 ORDER BY c.created_at DESC`, userID)
}

func (cr *ComplaintRepo) list(ctx context.Context, q string, args ...any) ([]models.Complaint, error) {
	rows, err := cr.db.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserName, &c.Category, &c.Description, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (cr *ComplaintRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	q := `UPDATE complaints SET status = $1 WHERE id = $2 RETURNING id`
	var updated int64
	if err := cr.db.conn.QueryRow(ctx, q, status, id).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrNotFound
		}
		return err
	}
	return nil
}
