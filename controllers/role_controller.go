package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
)

type rolePermissionsPayload struct {
	Permissions []string `json:"permissions"`
}

type createRolePayload struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type RoleController struct {
	Roles *services.RoleService
	Audit auditor
	Log   *zap.Logger
}

func NewRoleController(roles *services.RoleService, audit auditor, log *zap.Logger) *RoleController {
	return &RoleController{Roles: roles, Audit: auditOrNop(audit), Log: log}
}

func (ctl *RoleController) List(c *gin.Context) {
	roles, err := ctl.Roles.List(c.Request.Context())
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (ctl *RoleController) Create(c *gin.Context) {
	var payload createRolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	role, err := ctl.Roles.Create(c.Request.Context(), strings.TrimSpace(payload.Name), payload.Description, payload.Permissions)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "create", "role", role.ID, nil, role, c.ClientIP())
	c.JSON(http.StatusCreated, role)
}

// UpdatePermissions replaces the role's permission set. The role may be
// addressed by id or by name.
func (ctl *RoleController) UpdatePermissions(c *gin.Context) {
	var payload rolePermissionsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	role, err := ctl.Roles.UpdatePermissions(c.Request.Context(), c.Param("id"), payload.Permissions)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "permissions", "role", role.ID, nil, payload.Permissions, c.ClientIP())
	c.JSON(http.StatusOK, role)
}

// Permissions returns the permission catalogue grouped by category.
func (ctl *RoleController) Permissions(c *gin.Context) {
	c.JSON(http.StatusOK, services.Catalogue())
}
