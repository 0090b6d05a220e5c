package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucDiscount "github.com/BruksfildServices01/barber-booking/internal/usecase/discount"
)

// ======================================================
// HANDLER
// ======================================================

type DiscountHandler struct {
	create *ucDiscount.CreateDiscount
	update *ucDiscount.UpdateDiscount
	toggle *ucDiscount.ToggleDiscount
	delete *ucDiscount.DeleteDiscount
	assign *ucDiscount.AssignToCustomer
	list   *ucDiscount.ListDiscounts
	get    *ucDiscount.GetDiscount
	usages *ucDiscount.ListUsages
	check  *ucDiscount.CheckDiscount
}

type DiscountUseCases struct {
	Create *ucDiscount.CreateDiscount
	Update *ucDiscount.UpdateDiscount
	Toggle *ucDiscount.ToggleDiscount
	Delete *ucDiscount.DeleteDiscount
	Assign *ucDiscount.AssignToCustomer
	List   *ucDiscount.ListDiscounts
	Get    *ucDiscount.GetDiscount
	Usages *ucDiscount.ListUsages
	Check  *ucDiscount.CheckDiscount
}

func NewDiscountHandler(uc DiscountUseCases) *DiscountHandler {
	return &DiscountHandler{
		create: uc.Create,
		update: uc.Update,
		toggle: uc.Toggle,
		delete: uc.Delete,
		assign: uc.Assign,
		list:   uc.List,
		get:    uc.Get,
		usages: uc.Usages,
		check:  uc.Check,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ApplicabilityRequest struct {
	Type string `json:"type" binding:"required"`
	ID   uint   `json:"id" binding:"required"`
}

type DiscountRequest struct {
	Code               string                 `json:"code"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	DiscountType       string                 `json:"discount_type"`
	DiscountValue      decimal.Decimal        `json:"discount_value"`
	MaxDiscountAmount  decimal.NullDecimal    `json:"max_discount_amount"`
	MinOrderAmount     decimal.NullDecimal    `json:"min_order_amount"`
	StartDate          time.Time              `json:"start_date"`
	EndDate            time.Time              `json:"end_date"`
	UsageLimit         *int                   `json:"usage_limit"`
	CustomerUsageLimit *int                   `json:"customer_usage_limit"`
	IsActive           *bool                  `json:"is_active"`
	AppliesTo          string                 `json:"applies_to"`
	Applicabilities    []ApplicabilityRequest `json:"applicabilities"`
}

func (r DiscountRequest) input() ucDiscount.DefinitionInput {
	rules := make([]domain.Applicability, 0, len(r.Applicabilities))
	for _, a := range r.Applicabilities {
		rules = append(rules, domain.Applicability{
			Kind: domain.TargetKind(strings.ToLower(strings.TrimSpace(a.Type))),
			ID:   a.ID,
		})
	}

	return ucDiscount.DefinitionInput{
		Code:               r.Code,
		Name:               r.Name,
		Description:        r.Description,
		DiscountType:       r.DiscountType,
		DiscountValue:      r.DiscountValue,
		MaxDiscountAmount:  r.MaxDiscountAmount,
		MinOrderAmount:     r.MinOrderAmount,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		UsageLimit:         r.UsageLimit,
		CustomerUsageLimit: r.CustomerUsageLimit,
		IsActive:           r.IsActive,
		AppliesTo:          r.AppliesTo,
		Applicabilities:    rules,
	}
}

type AssignRequest struct {
	CustomerID uint       `json:"customer_id" binding:"required"`
	MaxUsage   *int       `json:"max_usage"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type CheckDiscountRequest struct {
	Code        string              `json:"code" binding:"required"`
	ServiceID   uint                `json:"service_id" binding:"required"`
	BarberID    uint                `json:"barber_id"`
	CustomerID  uint                `json:"customer_id"`
	OrderAmount decimal.NullDecimal `json:"order_amount"`
}

// ======================================================
// ADMIN
// ======================================================

func (h *DiscountHandler) Create(c *gin.Context) {
	var req DiscountRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c).ID, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, d)
}

func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req DiscountRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c).ID, id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

func (h *DiscountHandler) Toggle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	d, err := h.toggle.Execute(c.Request.Context(), middleware.ActorFrom(c).ID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c).ID, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *DiscountHandler) Assign(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req AssignRequest
	if !bind(c, &req) {
		return
	}

	grant, err := h.assign.Execute(c.Request.Context(), middleware.ActorFrom(c).ID, ucDiscount.AssignInput{
		DiscountID: id,
		CustomerID: req.CustomerID,
		MaxUsage:   req.MaxUsage,
		ExpiresAt:  req.ExpiresAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, grant)
}

// List answers GET /admin/discounts?query=&active=
func (h *DiscountHandler) List(c *gin.Context) {
	filter := domain.ListFilter{Query: strings.TrimSpace(c.Query("query"))}

	switch c.Query("active") {
	case "true":
		v := true
		filter.Active = &v
	case "false":
		v := false
		filter.Active = &v
	}

	list, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	d, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

func (h *DiscountHandler) Usages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	list, err := h.usages.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// PREVIEW
// ======================================================

// Check previews a code without consuming it. Customers always check for
// themselves; staff may name the customer.
func (h *DiscountHandler) Check(c *gin.Context) {
	var req CheckDiscountRequest
	if !bind(c, &req) {
		return
	}

	actor := middleware.ActorFrom(c)
	if actor.Role == models.RoleCustomer {
		req.CustomerID = actor.ID
	}

	res, err := h.check.Execute(c.Request.Context(), ucDiscount.CheckDiscountInput{
		Code:        req.Code,
		ServiceID:   req.ServiceID,
		BarberID:    req.BarberID,
		CustomerID:  req.CustomerID,
		OrderAmount: req.OrderAmount,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
