package controllers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
	"hotel-ops/utils"
)

type ExpenseController struct {
	Expenses *services.ExpenseService
	Exporter *services.ExportService
	Audit    auditor
	Log      *zap.Logger
}

func NewExpenseController(expenses *services.ExpenseService, export *services.ExportService, audit auditor, log *zap.Logger) *ExpenseController {
	return &ExpenseController{Expenses: expenses, Exporter: export, Audit: auditOrNop(audit), Log: log}
}

func expenseFilterFromQuery(c *gin.Context) services.ExpenseFilter {
	return services.ExpenseFilter{
		Property: strings.TrimSpace(c.Query("property")),
		Category: strings.TrimSpace(c.Query("category")),
		From:     firstQuery(c, "from", "start"),
		To:       firstQuery(c, "to", "end"),
	}
}

// ----------------------------------------------------
// 1. Get Expenses (GET /api/expenses)
// ----------------------------------------------------

func (ctl *ExpenseController) List(c *gin.Context) {
	f := expenseFilterFromQuery(c)
	ctx := c.Request.Context()
	expenses, err := ctl.Expenses.List(ctx, f)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	total, err := ctl.Expenses.Total(ctx, f)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total": total})
}

// ----------------------------------------------------
// 2. Get Expense (GET /api/expenses/:id)
// ----------------------------------------------------

func (ctl *ExpenseController) Get(c *gin.Context) {
	e, err := ctl.Expenses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Related handles GET /api/expenses/:id/related.
func (ctl *ExpenseController) Related(c *gin.Context) {
	related, err := ctl.Expenses.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, related)
}

// ----------------------------------------------------
// 3. Create Expense (POST /api/expenses)
// ----------------------------------------------------

func (ctl *ExpenseController) Create(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	e, err := ctl.Expenses.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "create", "expense", e.ID, nil, e, c.ClientIP())
	c.JSON(http.StatusCreated, e)
}

// ----------------------------------------------------
// 4. Update Expense (PUT /api/expenses/:id)
// ----------------------------------------------------

func (ctl *ExpenseController) Update(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	e, err := ctl.Expenses.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "update", "expense", e.ID, nil, e, c.ClientIP())
	c.JSON(http.StatusOK, e)
}

// ----------------------------------------------------
// 5. Delete Expense (DELETE /api/expenses/:id)
// ----------------------------------------------------

func (ctl *ExpenseController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctl.Expenses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "delete", "expense", id, nil, nil, c.ClientIP())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "message": "expense deleted"})
}

// Export handles GET /api/expenses/export.
func (ctl *ExpenseController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctl.Exporter.ExpensesXLSX(c.Request.Context(), &buf, expenseFilterFromQuery(c)); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	sendXLSX(c, "expenses", buf.Bytes())
}
