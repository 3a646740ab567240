package gorm

import "time"

type User struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid" json:"uid"`
	Name         string    `gorm:"column:name" json:"name"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	// Denormalized aggregates over the owned flight set. Updated after every
	// flight write and reconciled by the background totals job.
	TotalFlights int64     `gorm:"column:total_flights;default:0" json:"totalFlights"`
	TotalAirTime int64     `gorm:"column:total_air_time;default:0" json:"totalAirTime"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
