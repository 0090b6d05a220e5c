package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	CategoryID  *uint           `json:"category_id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	CategoryID  *uint            `json:"category_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// --------- Services ---------

// List is public. Staff may pass active=false to see retired services.
func (h *ServiceHandler) List(c *gin.Context) {
	categoryID, ok := uintQuery(c, "category_id")
	if !ok {
		return
	}
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Preload("Category")

	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}

	switch {
	case activeStr == "false" && middleware.ActorFrom(c).IsAdmin():
		q = q.Where("active = ?", false)
	case activeStr == "all" && middleware.ActorFrom(c).IsAdmin():
	default:
		q = q.Where("active = ?", true)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bind(c, &req) {
		return
	}
	if err := validatePrice(req.Price); err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.categoryExists(c, req.CategoryID) {
		return
	}

	service := models.Service{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "service_created", &service.ID)
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	var req UpdateServiceRequest
	if !bind(c, &req) {
		return
	}

	if req.CategoryID != nil {
		if !h.categoryExists(c, req.CategoryID) {
			return
		}
		service.CategoryID = req.CategoryID
		service.Category = nil
	}
	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.Respond(c, httperr.ErrValidation("duration_min", "must be at least 1"))
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			httperr.Respond(c, err)
			return
		}
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "service_updated", &service.ID)
	c.JSON(http.StatusOK, service)
}

// --------- Categories ---------

func (h *ServiceHandler) ListCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&categories).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, categories)
}

func (h *ServiceHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !bind(c, &req) {
		return
	}

	category := models.ServiceCategory{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&category).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.ErrConflict("category_taken"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "category_created", &category.ID)
	httpresp.Created(c, category)
}

// --------- Helpers ---------

func validatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return httperr.ErrValidation("price", "must not be negative")
	}
	return nil
}

func (h *ServiceHandler) categoryExists(c *gin.Context, id *uint) bool {
	if id == nil {
		return true
	}

	var n int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.ServiceCategory{}).
		Where("id = ?", *id).
		Count(&n).Error; err != nil {

		httperr.Respond(c, err)
		return false
	}
	if n == 0 {
		httperr.BadRequest(c, "category_not_found", "Category not found.")
		return false
	}
	return true
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, id *uint) {
	actor := middleware.ActorFrom(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   action,
		Entity:   "service",
		EntityID: id,
	})
}
