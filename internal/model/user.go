package model

import "time"

type UserRole string

const (
	RoleBuyer     UserRole = "buyer"
	RoleSeller    UserRole = "seller"
	RoleBroker    UserRole = "broker"
	RoleDeveloper UserRole = "developer"
	RoleAdmin     UserRole = "admin"
)

var validUserRoles = map[UserRole]bool{
	RoleBuyer: true, RoleSeller: true, RoleBroker: true,
	RoleDeveloper: true, RoleAdmin: true,
}

func (r UserRole) Valid() bool { return validUserRoles[r] }

// User is the ownership and authorization anchor for listings and inquiries.
type User struct {
	ID       uint     `json:"id" gorm:"primarykey"`
	Name     string   `json:"name" gorm:"type:varchar(150);not null"`
	Email    string   `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone    string   `json:"phone" gorm:"type:varchar(20)"`
	Password string   `json:"-" gorm:"type:varchar(255);not null"`
	Role     UserRole `json:"role" gorm:"type:varchar(16);default:'buyer';index"`

	CompanyName string `json:"company_name,omitempty" gorm:"type:varchar(255)"`
	City        string `json:"city,omitempty" gorm:"type:varchar(100)"`
	AvatarURL   string `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`

	IsActive   bool `json:"is_active" gorm:"default:true"`
	IsVerified bool `json:"is_verified" gorm:"default:false"`
	IsFeatured bool `json:"is_featured" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
