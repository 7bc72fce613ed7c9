package helper

import (
	"errors"
	"fmt"

	"canteen_manager/constants"
	"canteen_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrNotApproved     = errors.New("canteen not found or not approved")
	ErrRequestNotFound = errors.New("canteen request not found")
)

// FindLatestRequestByAccount returns the account's most recent request, nil
// when none exists.
func FindLatestRequestByAccount(db *gorm.DB, accountId uint) (*model.CanteenRequest, error) {
	var request model.CanteenRequest
	err := db.Where("account_id = ?", accountId).
		Order("created_at desc").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// RequireApprovedCanteen is the gate in front of every menu mutation and
// canteen-scoped order action: it resolves the account's current request and
// fails unless that request is approved.
func RequireApprovedCanteen(db *gorm.DB, accountId uint) (uint, error) {
	request, err := FindLatestRequestByAccount(db, accountId)
	if err != nil {
		return 0, err
	}
	if request == nil || request.Status != constants.REQUEST_APPROVED {
		return 0, ErrNotApproved
	}
	return request.ID, nil
}

// HasOpenRequest reports whether the account already has a pending or
// approved request, which blocks a new submission.
func HasOpenRequest(db *gorm.DB, accountId uint) (bool, *model.CanteenRequest, error) {
	request, err := FindLatestRequestByAccount(db, accountId)
	if err != nil {
		return false, nil, err
	}
	if request != nil && request.IsOpen() {
		return true, request, nil
	}
	return false, request, nil
}

// LicenseInUse checks the license number against every open request. The
// partial unique index is the backstop; this pre-check exists for a clean
// error message.
func LicenseInUse(db *gorm.DB, licenseNumber string) (bool, error) {
	var count int64
	err := db.Model(&model.CanteenRequest{}).
		Where("license_number = ? AND status IN ?", licenseNumber,
			[]string{constants.REQUEST_PENDING, constants.REQUEST_APPROVED}).
		Count(&count).Error
	return count > 0, err
}

func GenerateUniqueCanteenSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.CanteenRequest{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
