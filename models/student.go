package models

import "time"

// StudentIdentity is the authenticated student held by an identity gate.
type StudentIdentity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AccessCode string `json:"accessCode"`
	Email      string `json:"email"`
}

// StudentSession is the persisted access-code slot of one browser session.
// A missing row (or an empty code) means the browser is logged out.
type StudentSession struct {
	SessionID  string `gorm:"primaryKey;size:64"`
	AccessCode string `gorm:"size:128;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
