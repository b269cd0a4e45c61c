package database

import (
	"time"
)

type DeliveryRepository interface {
	WasDelivered(targetName string, menuDate time.Time) (bool, error)
	RecordDelivery(targetName string, menuDate time.Time, dishCount int) error

	GetDeliveryCount() (int, error)
	GetRecentDeliveries(limit int) ([]Delivery, error)
}
