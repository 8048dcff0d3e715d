package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/mw"
	"hostel-allocation-backend/internal/store"
)

// ListOwnAllocations handles GET /api/allocations/mine (student only).
func (h *Handler) ListOwnAllocations(c *gin.Context) {
	allocations, err := h.store.ListAllocationsByStudent(c.Request.Context(), mw.CallerID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve allocations"})
		return
	}
	c.JSON(http.StatusOK, allocations)
}

// ListAllocations handles GET /api/allocations (admin only), paginated.
func (h *Handler) ListAllocations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	opts := store.ListOptions{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	allocations, total, err := h.store.ListAllocations(c.Request.Context(), opts)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve allocations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"allocations": allocations,
		"totalPages":  opts.TotalPages(total),
		"currentPage": opts.Page,
		"total":       total,
	})
}
