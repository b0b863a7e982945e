package handler

import (
	"net/http"
	"strconv"

	"smart-billing/internal/models"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler serves the operations log.
type LogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewLogHandler(db *gorm.DB, pageSize int) *LogHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &LogHandler{DB: db, PageSize: pageSize}
}

// ListLogs returns audit entries, newest first, paged with ?page=.
func (h *LogHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size := h.PageSize
	offset := (page - 1) * size

	var total int64
	if err := h.DB.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query logs failed")
		return
	}

	var logs []models.AuditLog
	if err := h.DB.
		Order("id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query logs failed")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		items = append(items, gin.H{
			"id":          l.ID,
			"operator_id": l.OperatorID,
			"method":      l.Method,
			"path":        l.Path,
			"action":      l.Action,
			"ip":          l.IP,
			"created_at":  l.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
