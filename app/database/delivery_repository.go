package database

import (
	"fmt"
	"time"
)

var _ DeliveryRepository = (*DeliveryRepositoryImpl)(nil)

type DeliveryRepositoryImpl struct {
	db *DB
}

func NewDeliveryRepository(db *DB) *DeliveryRepositoryImpl {
	return &DeliveryRepositoryImpl{db: db}
}

const dateFormat = "2006-01-02"

func (r *DeliveryRepositoryImpl) WasDelivered(targetName string, menuDate time.Time) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM deliveries
		WHERE target_name = ? AND menu_date = ?
	`, targetName, menuDate.Format(dateFormat)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check delivery: %w", err)
	}

	return count > 0, nil
}

func (r *DeliveryRepositoryImpl) RecordDelivery(targetName string, menuDate time.Time, dishCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO deliveries (target_name, menu_date, dish_count, sent_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (target_name, menu_date) DO UPDATE SET
			dish_count = excluded.dish_count,
			sent_at = excluded.sent_at
	`, targetName, menuDate.Format(dateFormat), dishCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}

	return nil
}

func (r *DeliveryRepositoryImpl) GetDeliveryCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM deliveries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	return count, nil
}

func (r *DeliveryRepositoryImpl) GetRecentDeliveries(limit int) ([]Delivery, error) {
	rows, err := r.db.Query(`
		SELECT id, target_name, menu_date, dish_count, sent_at
		FROM deliveries
		ORDER BY sent_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []Delivery
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.Target, &d.MenuDate, &d.DishCount, &d.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, rows.Err()
}
