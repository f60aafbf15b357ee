package db

import (
	"context"
	"errors"
	"fmt"

	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

type AnnouncementRepo struct {
	db *DB
}

func NewAnnouncementRepo(db *DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

func (ar *AnnouncementRepo) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	q := `INSERT INTO announcements (title, message) VALUES ($1, $2) RETURNING id, created_at`
	if err := ar.db.conn.QueryRow(ctx, q, a.Title, a.Message).Scan(&a.ID, &a.CreatedAt); err != nil {
		return models.Announcement{}, fmt.Errorf("failed to insert announcement: %v", err)
	}
	return a, nil
}

func (ar *AnnouncementRepo) List(ctx context.Context) ([]models.Announcement, error) {
	q := `SELECT id, title, message, created_at FROM announcements ORDER BY created_at DESC`
	rows, err := ar.db.conn.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (ar *AnnouncementRepo) Delete(ctx context.Context, id int64) error {
	q := `DELETE FROM announcements WHERE id = $1 RETURNING id`
	var deleted int64
	if err := ar.db.conn.QueryRow(ctx, q, id).Scan(&deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrNotFound
		}
		return err
	}
	return nil
}
