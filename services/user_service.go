package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-ops/models"
)

type UserService struct {
	DB    *gorm.DB
	Roles *RoleService
}

func NewUserService(db *gorm.DB, roles *RoleService) *UserService {
	return &UserService{DB: db, Roles: roles}
}

type UserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

func (s *UserService) ensureRole(ctx context.Context, role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	ok, err := s.Roles.Exists(ctx, role)
	if err != nil {
		return "", fmt.Errorf("check role: %w", err)
	}
	if !ok {
		return "", validationf("unknown role %q", role)
	}
	return role, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return models.User{}, translateDBError(err, "user")
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	role, err := s.ensureRole(ctx, in.Role)
	if err != nil {
		return models.User{}, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserActive,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return models.User{}, translateDBError(err, "user "+u.Email)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, m map[string]interface{}) (models.User, error) {
	updates := map[string]interface{}{}
	for _, col := range []string{"name", "phone"} {
		if hasAnyKey(m, col) {
			updates[col] = getStringFromMap(m, col)
		}
	}
	if hasAnyKey(m, "email") {
		updates["email"] = strings.ToLower(getStringFromMap(m, "email"))
	}
	if hasAnyKey(m, "status") {
		st := strings.ToLower(getStringFromMap(m, "status"))
		if st != models.UserActive && st != models.UserInactive {
			return models.User{}, fmt.Errorf("%w: user status %q", ErrInvalidStatus, st)
		}
		updates["status"] = st
	}
	if hasAnyKey(m, "role") {
		role, err := s.ensureRole(ctx, getStringFromMap(m, "role"))
		if err != nil {
			return models.User{}, err
		}
		updates["role"] = role
	}
	if pw := getStringFromMap(m, "password"); pw != "" {
		hash, err := hashPassword(pw)
		if err != nil {
			return models.User{}, err
		}
		updates["password_hash"] = hash
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&u).Updates(updates).Error; err != nil {
			return models.User{}, translateDBError(err, "user")
		}
	}
	return s.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return translateDBError(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	return nil
}
