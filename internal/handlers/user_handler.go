package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type BarberDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ======================================================
// LIST BARBERS (PUBLIC)
// ======================================================
func (h *UserHandler) ListBarbers(c *gin.Context) {
	var barbers []BarberDTO
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Select("id, name").
		Where("role = ?", models.RoleBarber).
		Order("name ASC").
		Scan(&barbers).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, barbers)
}

// ======================================================
// LIST CUSTOMERS (STAFF)
// ======================================================
func (h *UserHandler) ListCustomers(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("role = ?", models.RoleCustomer)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.User
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, customers)
}
