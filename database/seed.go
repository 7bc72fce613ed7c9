package database

import (
	"log"

	"canteen_manager/constants"
	"canteen_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		log.Println("failed to hash seed admin password, skipping seed:", err)
		return
	}
	accounts := []model.Account{
		{Name: "Administrator", Username: "admin", Email: "admin@canteen.local", Password: string(bytes), Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}
}
