package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-allocation-backend/internal/model"
)

// RoomResponse represents the API response for a single room.
type RoomResponse struct {
	model.Room
	SpotsLeft int `json:"spotsLeft"`
}

// ListRooms handles the GET /api/rooms request.
func ListRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []model.Room
		if err := db.Where("is_active = ?", true).Order("room_number").Find(&rooms).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
			return
		}

		responses := make([]RoomResponse, 0, len(rooms))
		for _, r := range rooms {
			responses = append(responses, RoomResponse{
				Room:      r,
				SpotsLeft: r.Capacity - r.CurrentOccupancy,
			})
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetRoom handles the GET /api/rooms/{room_id} request.
func GetRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
			return
		}

		var room model.Room
		if err := db.Preload("Residents").First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room"})
			}
			return
		}
		c.JSON(http.StatusOK, RoomResponse{Room: room, SpotsLeft: room.Capacity - room.CurrentOccupancy})
	}
}

type createRoomRequest struct {
	RoomNumber  string  `json:"roomNumber" binding:"required"`
	Floor       int     `json:"floor"`
	RoomType    string  `json:"roomType"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	MonthlyRent float64 `json:"monthlyRent" binding:"required,gt=0"`
	Amenities   string  `json:"amenities"`
}

// CreateRoom handles the POST /api/rooms request (admin only).
func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		room := model.Room{
			RoomNumber:  req.RoomNumber,
			Floor:       req.Floor,
			RoomType:    req.RoomType,
			Capacity:    req.Capacity,
			MonthlyRent: req.MonthlyRent,
			Amenities:   req.Amenities,
			IsActive:    true,
		}
		if err := db.Create(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "room number already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
			return
		}
		c.JSON(http.StatusCreated, room)
	}
}

type updateRoomRequest struct {
	RoomType    *string  `json:"roomType"`
	MonthlyRent *float64 `json:"monthlyRent"`
	Amenities   *string  `json:"amenities"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateRoom handles the PATCH /api/rooms/{room_id} request (admin only).
// Capacity and occupancy are deliberately not editable here; occupancy is
// owned by the allocation workflow.
func UpdateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
			return
		}

		var req updateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var room model.Room
		if err := db.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room"})
			}
			return
		}

		updates := map[string]any{}
		if req.RoomType != nil {
			updates["room_type"] = *req.RoomType
		}
		if req.MonthlyRent != nil {
			updates["monthly_rent"] = *req.MonthlyRent
		}
		if req.Amenities != nil {
			updates["amenities"] = *req.Amenities
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if len(updates) == 0 {
			c.JSON(http.StatusOK, room)
			return
		}

		if err := db.Model(&room).Updates(updates).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}
