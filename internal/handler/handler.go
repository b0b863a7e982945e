package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"smart-billing/internal/service"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
)

// fail maps a service error onto the response envelope: validation
// failures become 400, missing records 404, everything else 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

// idParam parses a positive numeric :id path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts the formats operators actually paste into forms.
func parseDate(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00+08:00
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// todayDate is today at midnight local time.
func todayDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
