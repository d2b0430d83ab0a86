package models

import "time"

// Credential is a login held by the built-in identity provider.
type Credential struct {
	UID          string    `json:"uid" firestore:"uid" gorm:"primaryKey;type:varchar(128)"`
	Email        string    `json:"email" firestore:"email" gorm:"uniqueIndex;type:varchar(255)"`
	PasswordHash string    `json:"-" firestore:"passwordHash" gorm:"type:varchar(255)"`
	DisplayName  string    `json:"displayName" firestore:"displayName" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt" gorm:"autoCreateTime:false"`
}

func (Credential) TableName() string { return "credentials" }
