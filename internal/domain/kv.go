package domain

import "time"

// KvEntry is one key of the SQL-backed key-value storage
type KvEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (KvEntry) TableName() string {
	return "kv_entry"
}
