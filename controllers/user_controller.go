package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
	"hotel-ops/utils"
)

type UserController struct {
	Users *services.UserService
	Audit auditor
	Log   *zap.Logger
}

func NewUserController(users *services.UserService, audit auditor, log *zap.Logger) *UserController {
	return &UserController{Users: users, Audit: auditOrNop(audit), Log: log}
}

func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *UserController) Get(c *gin.Context) {
	u, err := ctl.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) Create(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}
	u, err := ctl.Users.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "create", "user", u.ID, nil, u, c.ClientIP())
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) Update(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	u, err := ctl.Users.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "update", "user", u.ID, nil, u, c.ClientIP())
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == identity(c).SubjectID {
		respondError(c, ctl.Log, services.ErrForbidden)
		return
	}
	if err := ctl.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "delete", "user", id, nil, nil, c.ClientIP())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "message": "user deleted"})
}
