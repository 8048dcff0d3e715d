package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/mw"
	"hostel-allocation-backend/internal/store"
)

type submitRequestBody struct {
	RoomID int64  `json:"roomId"`
	Notes  string `json:"notes"`
}

// SubmitRequest handles POST /api/requests (student only).
func (h *Handler) SubmitRequest(c *gin.Context) {
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
		return
	}

	req, err := h.engine.Submit(c.Request.Context(), mw.CallerID(c), body.RoomID, body.Notes)
	if err != nil {
		abortWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request submitted", "request": req})
}

// ListOwnRequests handles GET /api/requests/mine (student only).
func (h *Handler) ListOwnRequests(c *gin.Context) {
	requests, err := h.engine.ListOwn(c.Request.Context(), mw.CallerID(c))
	if err != nil {
		abortWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ListRequests handles GET /api/requests (admin only), with optional status
// filter and pagination.
func (h *Handler) ListRequests(c *gin.Context) {
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

	requests, total, err := h.engine.ListAll(c.Request.Context(), opts)
	if err != nil {
		abortWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requests":    requests,
		"totalPages":  opts.TotalPages(total),
		"currentPage": opts.Page,
		"total":       total,
	})
}

// ApproveRequest handles PATCH /api/requests/{request_id}/approve (admin only).
func (h *Handler) ApproveRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("request_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	allocation, req, err := h.engine.Approve(c.Request.Context(), requestID, mw.CallerID(c))
	if err != nil {
		abortWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Request approved and allocation created",
		"allocation": allocation,
		"request":    req,
	})
}

type rejectRequestBody struct {
	Notes string `json:"notes"`
}

// RejectRequest handles PATCH /api/requests/{request_id}/reject (admin only).
func (h *Handler) RejectRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("request_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var body rejectRequestBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	req, err := h.engine.Reject(c.Request.Context(), requestID, mw.CallerID(c), body.Notes)
	if err != nil {
		abortWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected", "request": req})
}
