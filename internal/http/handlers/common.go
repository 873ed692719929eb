package handlers

import (
	"net/http"
	"strings"

	"bikie/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	var details any
	if err != nil {
		details = gin.H{"reason": err.Error()}
	}
	respondError(c, status, "", message, details)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// criteriaFromQuery reads q, sort and the named category filter.
func criteriaFromQuery(c *gin.Context, filterKey string) (domain.Criteria, error) {
	sort, err := domain.ParseSortKey(c.Query("sort"))
	if err != nil {
		return domain.Criteria{}, err
	}
	crit := domain.Criteria{Search: strings.TrimSpace(c.Query("q")), Sort: sort}
	if filterKey != "" {
		crit.Filter = strings.TrimSpace(c.Query(filterKey))
	}
	return crit, nil
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}
