package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hostel-allocation-backend/internal/model"
)

// Sentinel errors returned by the store.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrRoomFull is returned when the guarded occupancy increment finds the
	// room at capacity.
	ErrRoomFull = errors.New("room is at capacity")
)

// Store defines the persistence operations the allocation workflow needs.
type Store interface {
	DB() *gorm.DB

	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)

	GetRequest(ctx context.Context, id int64) (*model.RoomRequest, error)
	CreateRequest(ctx context.Context, req *model.RoomRequest) error
	SaveRequest(ctx context.Context, req *model.RoomRequest) error
	HasPendingRequest(ctx context.Context, studentID, roomID int64) (bool, error)
	ListRequestsByStudent(ctx context.Context, studentID int64) ([]model.RoomRequest, error)
	ListRequests(ctx context.Context, opts ListOptions) ([]model.RoomRequest, int64, error)

	HasActiveAllocation(ctx context.Context, studentID int64) (bool, error)
	Allocate(ctx context.Context, req *model.RoomRequest, adminID int64, now time.Time) (*model.Allocation, error)
	GetAllocation(ctx context.Context, id int64) (*model.Allocation, error)
	ListAllocationsByStudent(ctx context.Context, studentID int64) ([]model.Allocation, error)
	ListAllocations(ctx context.Context, opts ListOptions) ([]model.Allocation, int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch room %d: %w", id, err)
	}
	return &room, nil
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return &user, nil
}

func (s *gormStore) GetRequest(ctx context.Context, id int64) (*model.RoomRequest, error) {
	var req model.RoomRequest
	err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Room").
		First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch request %d: %w", id, err)
	}
	return &req, nil
}

func (s *gormStore) CreateRequest(ctx context.Context, req *model.RoomRequest) error {
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Reload the room association for the response.
	return s.db.WithContext(ctx).Preload("Room").First(req, req.ID).Error
}

func (s *gormStore) SaveRequest(ctx context.Context, req *model.RoomRequest) error {
	if err := s.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("failed to save request %d: %w", req.ID, err)
	}
	return nil
}

func (s *gormStore) HasPendingRequest(ctx context.Context, studentID, roomID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RoomRequest{}).
		Where("student_id = ? AND room_id = ? AND status = ?", studentID, roomID, model.RequestPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) ListRequestsByStudent(ctx context.Context, studentID int64) ([]model.RoomRequest, error) {
	var requests []model.RoomRequest
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for student %d: %w", studentID, err)
	}
	return requests, nil
}

func (s *gormStore) ListRequests(ctx context.Context, opts ListOptions) ([]model.RoomRequest, int64, error) {
	opts = opts.withDefaults()

	query := s.db.WithContext(ctx).Model(&model.RoomRequest{})
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	var requests []model.RoomRequest
	err := query.
		Preload("Student").
		Preload("Room").
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset((opts.Page - 1) * opts.Limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, total, nil
}

func (s *gormStore) HasActiveAllocation(ctx context.Context, studentID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Where("student_id = ? AND status = ?", studentID, model.AllocationActive).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active allocations: %w", err)
	}
	return count > 0, nil
}

// Allocate commits an approval: the occupancy increment, the resident-set
// append, the allocation row, the student's room reference, and the request
// update are applied in one transaction. The increment is guarded by the
// capacity in the same UPDATE, so two concurrent approvals cannot push a room
// over capacity; the loser observes ErrRoomFull.
func (s *gormStore) Allocate(ctx context.Context, req *model.RoomRequest, adminID int64, now time.Time) (*model.Allocation, error) {
	var allocation model.Allocation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Room{}).
			Where("id = ? AND current_occupancy < capacity", req.RoomID).
			UpdateColumn("current_occupancy", gorm.Expr("current_occupancy + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment occupancy for room %d: %w", req.RoomID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRoomFull
		}

		var room model.Room
		if err := tx.First(&room, req.RoomID).Error; err != nil {
			return fmt.Errorf("failed to reload room %d: %w", req.RoomID, err)
		}

		if err := tx.Model(&room).Association("Residents").Append(&model.User{ID: req.StudentID}); err != nil {
			return fmt.Errorf("failed to append resident to room %d: %w", req.RoomID, err)
		}

		allocation = model.Allocation{
			StudentID:     req.StudentID,
			RoomID:        room.ID,
			AllocatedByID: adminID,
			Status:        model.AllocationActive,
			StartDate:     now,
			MonthlyRent:   room.MonthlyRent,
			Notes:         "Approved via request",
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return fmt.Errorf("failed to create allocation: %w", err)
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", req.StudentID).
			Update("room_id", room.ID).Error; err != nil {
			return fmt.Errorf("failed to link student %d to room %d: %w", req.StudentID, room.ID, err)
		}

		if err := tx.Save(req).Error; err != nil {
			return fmt.Errorf("failed to save request %d: %w", req.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAllocation(ctx, allocation.ID)
}

func (s *gormStore) GetAllocation(ctx context.Context, id int64) (*model.Allocation, error) {
	var allocation model.Allocation
	err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Room").
		Preload("AllocatedBy").
		First(&allocation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch allocation %d: %w", id, err)
	}
	return &allocation, nil
}

func (s *gormStore) ListAllocationsByStudent(ctx context.Context, studentID int64) ([]model.Allocation, error) {
	var allocations []model.Allocation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where("student_id = ?", studentID).
		Order("start_date DESC").
		Find(&allocations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations for student %d: %w", studentID, err)
	}
	return allocations, nil
}

func (s *gormStore) ListAllocations(ctx context.Context, opts ListOptions) ([]model.Allocation, int64, error) {
	opts = opts.withDefaults()

	query := s.db.WithContext(ctx).Model(&model.Allocation{})
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count allocations: %w", err)
	}

	var allocations []model.Allocation
	err := query.
		Preload("Student").
		Preload("Room").
		Order("start_date DESC").
		Limit(opts.Limit).
		Offset((opts.Page - 1) * opts.Limit).
		Find(&allocations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, total, nil
}
