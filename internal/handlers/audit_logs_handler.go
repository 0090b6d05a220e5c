package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// AuditLogsHandler pages through the audit trail, newest first.
type AuditLogsHandler struct {
	db    *gorm.DB
	clock timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

// List answers GET /admin/audit-logs?action=&entity=&user_id=&from=&to=&page=&limit=
// from and to are inclusive shop-local dates.
func (h *AuditLogsHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c, auditDefaultLimit, auditMaxLimit)

	userID, ok := uintQuery(c, "user_id")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// -------- filters --------
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	loc := h.clock.Location()
	if raw := c.Query("from"); raw != "" {
		from, err := schedule.ParseDate(raw, loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation("from", "must be YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := schedule.ParseDate(raw, loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation("to", "must be YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	// -------- total + page --------
	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&logs).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, p, total, logs)
}
