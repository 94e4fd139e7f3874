package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-ops/models"
)

var defaultRoles = []models.Role{
	{Name: models.RoleAdmin, Description: "Full system access"},
	{Name: models.RoleManager, Description: "Property operations and finances"},
	{Name: models.RoleStaff, Description: "Front desk and housekeeping"},
	{Name: models.RoleOwner, Description: "Property owner portal"},
}

type demoAccount struct {
	Name     string
	Email    string
	Role     string
	Password string
}

var demoStaff = []demoAccount{
	{Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin, Password: "admin123"},
	{Name: "Manager User", Email: "manager@example.com", Role: models.RoleManager, Password: "manager123"},
	{Name: "Staff User", Email: "staff@example.com", Role: models.RoleStaff, Password: "staff123"},
}

var demoOwner = demoAccount{Name: "Owner User", Email: "owner@example.com", Role: models.RoleOwner, Password: "owner123"}

// SeedDatabase ensures roles, their default permissions and the settings row
// exist. Demo accounts are created only when withDemo is set. Safe to run on
// every start.
func SeedDatabase(db *gorm.DB, withDemo bool, log *zap.Logger) error {
	if err := seedRoles(db, log); err != nil {
		return err
	}

	var settingsCount int64
	if err := db.Model(&models.HotelSetting{}).Count(&settingsCount).Error; err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if settingsCount == 0 {
		if err := db.Create(&models.HotelSetting{Name: "Hotel Ops"}).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	if !withDemo {
		return nil
	}
	for _, acct := range demoStaff {
		if err := seedStaff(db, acct); err != nil {
			log.Warn("failed to seed demo user", zap.String("email", acct.Email), zap.Error(err))
		}
	}
	if err := seedOwner(db, demoOwner); err != nil {
		log.Warn("failed to seed demo owner", zap.String("email", demoOwner.Email), zap.Error(err))
	}
	log.Info("demo accounts ensured")
	return nil
}

func seedRoles(db *gorm.DB, log *zap.Logger) error {
	defaults := models.DefaultRolePermissions()

	for i := range defaultRoles {
		role := defaultRoles[i]
		key := strings.ToLower(role.Name)

		var existing models.Role
		err := db.Where("LOWER(name) = ?", key).First(&existing).Error
		switch {
		case err == nil:
			role = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("create role %s: %w", role.Name, err)
			}
		default:
			return fmt.Errorf("find role %s: %w", role.Name, err)
		}

		var permCount int64
		db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&permCount)
		if permCount > 0 {
			continue
		}
		perms := make([]models.RolePermission, 0, len(defaults[key]))
		for _, p := range defaults[key] {
			perms = append(perms, models.RolePermission{RoleID: role.ID, Permission: p})
		}
		if len(perms) > 0 {
			if err := db.Create(&perms).Error; err != nil {
				log.Warn("failed to create role permissions", zap.String("role", role.Name), zap.Error(err))
			}
		}
	}

	log.Info("roles ensured")
	return nil
}

func seedStaff(db *gorm.DB, acct demoAccount) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", acct.Email).Count(&count)
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:         acct.Name,
		Email:        acct.Email,
		PasswordHash: string(hash),
		Role:         acct.Role,
		Status:       models.UserActive,
	}).Error
}

func seedOwner(db *gorm.DB, acct demoAccount) error {
	var count int64
	db.Model(&models.Owner{}).Where("email = ?", acct.Email).Count(&count)
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hash)
	return db.Create(&models.Owner{
		Name:           acct.Name,
		Email:          acct.Email,
		CommissionRate: models.DefaultOwnerCommission,
		PasswordHash:   &h,
	}).Error
}
