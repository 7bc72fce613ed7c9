package model

import (
	"time"

	"canteen_manager/constants"
)

// CanteenRequest is one canteen's application for marketplace participation.
// An instance only ever moves pending -> approved or pending -> rejected;
// after a rejection the owner submits a brand-new request instead of
// mutating the old one.
type CanteenRequest struct {
	DTO
	AccountId       uint       `gorm:"not null;index" json:"accountId"`
	Account         *Account   `gorm:"foreignKey:AccountId" json:"account,omitempty"`
	Name            string     `gorm:"not null;size:100" validate:"required,max=100" json:"name"`
	Owner           string     `gorm:"not null;size:50" validate:"required,max=50" json:"owner"`
	LicenseNumber   string     `gorm:"not null" validate:"required" json:"licenseNumber"`
	Location        string     `gorm:"not null;size:200" validate:"required,max=200" json:"location"`
	ContactEmail    string     `gorm:"not null" validate:"required,email" json:"contactEmail"`
	ContactPhone    string     `gorm:"not null" validate:"required" json:"contactPhone"`
	FoodType        string     `gorm:"not null" validate:"required,oneof=Vegetarian Non-Vegetarian Mixed Vegan Speciality" json:"foodType"`
	OpeningHours    string     `gorm:"not null" validate:"required" json:"openingHours"`
	Description     string     `gorm:"not null;size:500" validate:"required,max=500" json:"description"`
	Slug            string     `gorm:"uniqueIndex;size:120" json:"slug"`
	Status          string     `gorm:"not null;default:pending;index" json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
}

type CanteenRequests []CanteenRequest

// CanReapply reports whether the owning account may submit a new request.
func (r *CanteenRequest) CanReapply() bool {
	return r.Status == constants.REQUEST_REJECTED
}

// IsOpen reports whether the request still blocks a new submission.
func (r *CanteenRequest) IsOpen() bool {
	return r.Status == constants.REQUEST_PENDING || r.Status == constants.REQUEST_APPROVED
}

type CreateCanteenRequestInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Owner         string `json:"owner" validate:"required,max=50"`
	LicenseNumber string `json:"licenseNumber" validate:"required"`
	Location      string `json:"location" validate:"required,max=200"`
	ContactEmail  string `json:"contactEmail" validate:"required,email"`
	ContactPhone  string `json:"contactPhone" validate:"required"`
	FoodType      string `json:"foodType" validate:"required,oneof=Vegetarian Non-Vegetarian Mixed Vegan Speciality"`
	OpeningHours  string `json:"openingHours" validate:"required"`
	Description   string `json:"description" validate:"required,max=500"`
}

type RejectRequestInput struct {
	Reason string `json:"reason"`
}

type UpdateRequestStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	Reason string `json:"reason"`
}

type BulkRequestActionInput struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	RequestIds []uint `json:"requestIds" validate:"required,min=1,dive,gt=0"`
	Reason     string `json:"reason"`
}

type FilterCanteen struct {
	Pagination
	FoodType string `query:"foodType"`
	Location string `query:"location"`
	Status   string `query:"status"`
}
