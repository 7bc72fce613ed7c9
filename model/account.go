package model

type Account struct {
	DTO
	Name             string          `json:"name"`
	Email            string          `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Phone            string          `json:"phone"`
	Username         string          `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password         string          `gorm:"not null" json:"-"`
	Role             string          `gorm:"not null" validate:"required,oneof=customer canteen admin" json:"role"`
	Active           bool            `gorm:"not null;default:true" json:"active"`
	CanteenRequestId *uint           `json:"canteenRequestId"`
	CanteenRequest   *CanteenRequest `gorm:"foreignKey:CanteenRequestId;constraint:OnDelete:SET NULL" json:"canteenRequest,omitempty"`
}

type Accounts []Account

type SignupInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,len=10,numeric"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	Role     string `json:"role" validate:"required,oneof=customer canteen admin"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=customer canteen admin"`
}

type ForgotPasswordInput struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
}

type ResetPasswordInput struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
	Code         string `json:"code" validate:"required,len=6,numeric"`
	NewPassword  string `json:"newPassword" validate:"required,min=6,max=50"`
}

type FilterAccount struct {
	Pagination
	SearchKey string  `query:"searchKey"`
	Active    *bool   `query:"active"`
	Role      *string `query:"role"`
}
