package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser       = "user"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password,omitempty" json:"-"` // ✅ รับจาก frontend ได้ แต่ไม่ส่งกลับ
	Role             string             `bson:"role" json:"role"`
	Verified         bool               `bson:"verified" json:"verified"`
	AccountType      string             `bson:"account_type,omitempty" json:"account_type,omitempty"`
	SubscriptionType string             `bson:"subscription_type,omitempty" json:"subscription_type,omitempty"`
	Location         string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	AccountType string `json:"account_type" validate:"omitempty,oneof=individual organization"`
	Location    string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// UserFilter ตัวกรองของ superadmin/users
type UserFilter struct {
	SubscriptionType string
	AccountType      string
	Location         string
	Email            string
}
