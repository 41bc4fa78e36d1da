package dbmodels

import "time"

// BaseModel - общие поля записей: uuid-идентификатор и временные метки gorm
type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
