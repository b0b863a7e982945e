package middleware

import (
	"bytes"
	"io"

	"smart-billing/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records each authenticated request in the operations
// log after the handler runs.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var operatorID uint
		if v, ok := c.Get("currentOperator"); ok {
			if op, ok := v.(*models.Operator); ok && op != nil {
				operatorID = op.ID
			}
		}

		// keep a copy of the body for the action record
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		// only record operations of logged-in operators
		if operatorID == 0 {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			OperatorID: &operatorID,
			Method:     c.Request.Method,
			Path:       path,
			Action:     action,
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
