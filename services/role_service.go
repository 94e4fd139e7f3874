package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"hotel-ops/models"
)

type RoleService struct {
	DB *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{DB: db}
}

type RoleMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RoleView is a role with its permissions laid out per category, every
// catalogue entry present and true when granted.
type RoleView struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Permissions map[string]map[string]bool `json:"permissions"`
	Members     []RoleMember               `json:"members"`
}

type PermissionLabel struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type PermissionGroup struct {
	Category    string            `json:"category"`
	Label       string            `json:"label"`
	Permissions []PermissionLabel `json:"permissions"`
}

var titleCaser = cases.Title(language.English)

// PermissionLabelFor turns "update_cleaning_status" into "Update Cleaning Status".
func PermissionLabelFor(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// Catalogue lists every permission grouped by category with display labels.
func Catalogue() []PermissionGroup {
	out := make([]PermissionGroup, 0, len(models.PermissionCategories))
	for _, c := range models.PermissionCategories {
		g := PermissionGroup{Category: c.Category, Label: PermissionLabelFor(c.Category)}
		for _, p := range c.Permissions {
			g.Permissions = append(g.Permissions, PermissionLabel{Key: p, Label: PermissionLabelFor(p)})
		}
		out = append(out, g)
	}
	return out
}

func permissionMatrix(granted []string) map[string]map[string]bool {
	has := make(map[string]bool, len(granted))
	for _, p := range granted {
		has[p] = true
	}
	matrix := map[string]map[string]bool{}
	for _, c := range models.PermissionCategories {
		matrix[c.Category] = map[string]bool{}
		for _, p := range c.Permissions {
			matrix[c.Category][p] = has[p]
		}
	}
	return matrix
}

func (s *RoleService) List(ctx context.Context) ([]RoleView, error) {
	var roles []models.Role
	if err := s.DB.WithContext(ctx).Preload("Permissions").Order("name").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	var users []models.User
	if err := s.DB.WithContext(ctx).Select("id", "name", "email", "role").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list role members: %w", err)
	}
	members := map[string][]RoleMember{}
	for _, u := range users {
		key := strings.ToLower(u.Role)
		members[key] = append(members[key], RoleMember{ID: u.ID, Name: u.Name, Email: u.Email})
	}

	out := make([]RoleView, 0, len(roles))
	for _, r := range roles {
		m := members[strings.ToLower(r.Name)]
		if m == nil {
			m = []RoleMember{}
		}
		out = append(out, RoleView{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Permissions: permissionMatrix(r.PermissionKeys()),
			Members:     m,
		})
	}
	return out, nil
}

func validatePermissions(perms []string) ([]string, error) {
	seen := map[string]bool{}
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if !models.IsPermission(p) {
			return nil, validationf("unknown permission %q", p)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *RoleService) Create(ctx context.Context, name, description string, perms []string) (RoleView, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return RoleView{}, validationf("role name is required")
	}
	perms, err := validatePermissions(perms)
	if err != nil {
		return RoleView{}, err
	}

	role := models.Role{Name: name, Description: strings.TrimSpace(description)}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return translateDBError(err, "role")
		}
		return replacePermissions(tx, role.ID, perms)
	})
	if err != nil {
		return RoleView{}, err
	}
	return RoleView{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissionMatrix(perms),
		Members:     []RoleMember{},
	}, nil
}

func replacePermissions(tx *gorm.DB, roleID string, perms []string) error {
	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error; err != nil {
		return err
	}
	if len(perms) == 0 {
		return nil
	}
	rows := make([]models.RolePermission, 0, len(perms))
	for _, p := range perms {
		rows = append(rows, models.RolePermission{RoleID: roleID, Permission: p})
	}
	return tx.Create(&rows).Error
}

// UpdatePermissions replaces the permission set of the role identified by id
// or, failing that, by name.
func (s *RoleService) UpdatePermissions(ctx context.Context, idOrName string, perms []string) (RoleView, error) {
	perms, err := validatePermissions(perms)
	if err != nil {
		return RoleView{}, err
	}

	var role models.Role
	db := s.DB.WithContext(ctx)
	if err := db.Where("id = ? OR LOWER(name) = ?", idOrName, strings.ToLower(idOrName)).First(&role).Error; err != nil {
		return RoleView{}, translateDBError(err, "role")
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return replacePermissions(tx, role.ID, perms)
	}); err != nil {
		return RoleView{}, fmt.Errorf("update permissions: %w", err)
	}
	return RoleView{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissionMatrix(perms),
	}, nil
}

// PermissionsFor returns the permission keys granted to the named role.
func (s *RoleService) PermissionsFor(ctx context.Context, roleName string) ([]string, error) {
	var perms []string
	err := s.DB.WithContext(ctx).
		Model(&models.RolePermission{}).
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Where("LOWER(roles.name) = ? AND roles.deleted_at IS NULL", strings.ToLower(roleName)).
		Order("role_permissions.permission").
		Pluck("role_permissions.permission", &perms).Error
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	if perms == nil {
		perms = []string{}
	}
	return perms, nil
}

func (s *RoleService) Exists(ctx context.Context, roleName string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Role{}).Where("LOWER(name) = ?", strings.ToLower(roleName)).Count(&n).Error
	return n > 0, err
}
