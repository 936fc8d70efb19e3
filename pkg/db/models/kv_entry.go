package models

import "time"

// KVEntry backs the durable key-value store when it lives in the database.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey"`
	Value     string    `gorm:"column:entry_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (KVEntry) TableName() string { return "kv_entries" }
