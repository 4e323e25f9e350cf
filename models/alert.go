package models

import "time"

type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"index;size:64" json:"-"`
	Type      string    `gorm:"size:20" json:"type"` // "success" | "error" | "warning"
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
