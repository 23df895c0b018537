package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDefaults makes a fresh database usable: the two founding admin
// accounts and a starter set of conditions per category. FirstOrCreate keeps
// it idempotent across restarts.
func SeedDefaults(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admins := []User{
		{Name: "Viktor", Email: "viktor@wasatradfallning.se", PasswordHash: string(hash), Role: RoleAdmin},
		{Name: "Rudolf", Email: "rudolf@wasatradfallning.se", PasswordHash: string(hash), Role: RoleAdmin},
	}
	for _, admin := range admins {
		if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
			return err
		}
	}

	conditions := []Condition{
		{Name: "Strong wind", Type: ConditionTypeWeather},
		{Name: "Fog", Type: ConditionTypeWeather},
		{Name: "Thunderstorm", Type: ConditionTypeWeather},
		{Name: "Power lines nearby", Type: ConditionTypeLocation},
		{Name: "Road traffic", Type: ConditionTypeLocation},
		{Name: "Buildings in felling zone", Type: ConditionTypeLocation},
		{Name: "Dead branches", Type: ConditionTypeTree},
		{Name: "Rot in trunk", Type: ConditionTypeTree},
		{Name: "Leaning tree", Type: ConditionTypeTree},
	}
	for _, cond := range conditions {
		if err := db.Where("name = ? AND type = ?", cond.Name, cond.Type).FirstOrCreate(&cond).Error; err != nil {
			return err
		}
	}
	return nil
}
