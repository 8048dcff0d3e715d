package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/workflow"
)

// abortWorkflowError maps a workflow error to its HTTP status and writes the
// JSON error body. Validation and conflict outcomes are both client errors;
// callers distinguish them by message, the API by neither.
func abortWorkflowError(c *gin.Context, err error) {
	var status int
	switch workflow.KindOf(err) {
	case workflow.KindValidation, workflow.KindConflict:
		status = http.StatusBadRequest
	case workflow.KindForbidden:
		status = http.StatusForbidden
	case workflow.KindNotFound:
		status = http.StatusNotFound
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
