package models

import "time"

const (
	RoleAdmin  = "Administrador"
	RoleSeller = "Vendedor"
	RoleClient = "Cliente"
)

// User is the stored account of an identity. Its ID is the identity provider's subject id.
// Passwords never live here.
type User struct {
	ID        string    `json:"id" firestore:"-" gorm:"primaryKey;type:varchar(128)"`
	Nombre    string    `json:"nombre" firestore:"nombre" gorm:"type:varchar(255)"`
	Email     string    `json:"email" firestore:"email" gorm:"type:varchar(255);index"`
	Telefono  string    `json:"telefono,omitempty" firestore:"telefono,omitempty" gorm:"type:varchar(50)"`
	Region    string    `json:"region" firestore:"region" gorm:"type:varchar(100)"`
	Comuna    string    `json:"comuna" firestore:"comuna" gorm:"type:varchar(100)"`
	Role      string    `json:"role" firestore:"role" gorm:"type:varchar(32)"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" gorm:"autoCreateTime:false"`
}

func (User) TableName() string { return "users" }

// EffectiveRole returns the role used for authorization; accounts without one are clients.
func (u *User) EffectiveRole() string {
	if u.Role == "" {
		return RoleClient
	}
	return u.Role
}
