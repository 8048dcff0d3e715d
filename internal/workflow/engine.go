package workflow

import (
	"context"
	"errors"
	"time"

	"hostel-allocation-backend/internal/model"
	"hostel-allocation-backend/internal/store"
)

// DecisionListener is notified after a request reaches a terminal status.
// The notification worker pool implements it; a nil listener is allowed.
type DecisionListener interface {
	RequestDecided(requestID int64)
}

// Engine orchestrates the request-to-allocation workflow. All invariants on
// room occupancy, allocation uniqueness, and request lifecycle are enforced
// here; the store only supplies atomic persistence.
type Engine struct {
	store    store.Store
	listener DecisionListener
	now      func() time.Time
}

// NewEngine creates a workflow engine. listener may be nil.
func NewEngine(s store.Store, listener DecisionListener) *Engine {
	return &Engine{
		store:    s,
		listener: listener,
		now:      time.Now,
	}
}

// Submit creates a pending request for the student. Room occupancy is not
// touched until an admin decides the request.
func (e *Engine) Submit(ctx context.Context, studentID, roomID int64, notes string) (*model.RoomRequest, error) {
	if roomID <= 0 {
		return nil, validationErr("roomId is required")
	}

	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr("room not found or inactive")
		}
		return nil, internalErr("failed to load room", err)
	}
	if !room.IsActive {
		return nil, notFoundErr("room not found or inactive")
	}
	if !room.HasSpace() {
		return nil, conflictErr("room is full")
	}

	allocated, err := e.store.HasActiveAllocation(ctx, studentID)
	if err != nil {
		return nil, internalErr("failed to check allocations", err)
	}
	if allocated {
		return nil, conflictErr("you already have a room allocated")
	}

	pending, err := e.store.HasPendingRequest(ctx, studentID, roomID)
	if err != nil {
		return nil, internalErr("failed to check pending requests", err)
	}
	if pending {
		return nil, conflictErr("you already have a pending request for this room")
	}

	req := &model.RoomRequest{
		StudentID: studentID,
		RoomID:    roomID,
		Status:    model.RequestPending,
		Notes:     notes,
	}
	if err := e.store.CreateRequest(ctx, req); err != nil {
		return nil, internalErr("failed to create request", err)
	}
	return req, nil
}

// ListOwn returns the student's requests, newest first.
func (e *Engine) ListOwn(ctx context.Context, studentID int64) ([]model.RoomRequest, error) {
	requests, err := e.store.ListRequestsByStudent(ctx, studentID)
	if err != nil {
		return nil, internalErr("failed to list requests", err)
	}
	return requests, nil
}

// ListAll returns requests for admins, optionally filtered by status,
// paginated. The second return value is the filtered total.
func (e *Engine) ListAll(ctx context.Context, opts store.ListOptions) ([]model.RoomRequest, int64, error) {
	if opts.Status != "" {
		switch model.RequestStatus(opts.Status) {
		case model.RequestPending, model.RequestApproved, model.RequestRejected:
		default:
			return nil, 0, validationErr("invalid status filter")
		}
	}
	requests, total, err := e.store.ListRequests(ctx, opts)
	if err != nil {
		return nil, 0, internalErr("failed to list requests", err)
	}
	return requests, total, nil
}

// Approve decides a pending request in the student's favor. Capacity and the
// one-active-allocation rule are re-validated against current state, not the
// state at submission time; if either re-check fails the request is
// auto-rejected and a conflict is reported.
func (e *Engine) Approve(ctx context.Context, requestID, adminID int64) (*model.Allocation, *model.RoomRequest, error) {
	req, err := e.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, notFoundErr("request not found")
		}
		return nil, nil, internalErr("failed to load request", err)
	}
	if req.Status != model.RequestPending {
		return nil, nil, conflictErr("request already processed")
	}

	room, err := e.store.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, nil, internalErr("failed to load room", err)
	}
	if !room.HasSpace() {
		return nil, req, e.autoReject(ctx, req, adminID, "room is now full, request auto-rejected")
	}

	allocated, err := e.store.HasActiveAllocation(ctx, req.StudentID)
	if err != nil {
		return nil, nil, internalErr("failed to check allocations", err)
	}
	if allocated {
		return nil, req, e.autoReject(ctx, req, adminID, "student already has an active allocation, request auto-rejected")
	}

	if err := decide(req, model.RequestApproved, adminID, e.now()); err != nil {
		return nil, nil, err
	}

	allocation, err := e.store.Allocate(ctx, req, adminID, e.now())
	if err != nil {
		if errors.Is(err, store.ErrRoomFull) {
			// The room filled between the re-check and the commit; the
			// guarded increment lost the race. Fall back to the same
			// auto-reject path.
			req.Status = model.RequestPending
			req.DecisionByID = nil
			req.DecisionDate = nil
			return nil, req, e.autoReject(ctx, req, adminID, "room is now full, request auto-rejected")
		}
		return nil, nil, internalErr("failed to commit allocation", err)
	}

	e.notifyDecided(req.ID)
	return allocation, req, nil
}

// Reject decides a pending request against the student. No room or
// allocation record is touched.
func (e *Engine) Reject(ctx context.Context, requestID, adminID int64, notes string) (*model.RoomRequest, error) {
	req, err := e.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr("request not found")
		}
		return nil, internalErr("failed to load request", err)
	}

	if err := decide(req, model.RequestRejected, adminID, e.now()); err != nil {
		return nil, err
	}
	if notes != "" {
		req.Notes = notes
	}
	if err := e.store.SaveRequest(ctx, req); err != nil {
		return nil, internalErr("failed to save request", err)
	}

	e.notifyDecided(req.ID)
	return req, nil
}

// autoReject transitions a pending request to rejected during approval when a
// re-check fails, then reports the failure as a conflict.
func (e *Engine) autoReject(ctx context.Context, req *model.RoomRequest, adminID int64, msg string) error {
	if err := decide(req, model.RequestRejected, adminID, e.now()); err != nil {
		return err
	}
	if err := e.store.SaveRequest(ctx, req); err != nil {
		return internalErr("failed to save auto-rejected request", err)
	}
	e.notifyDecided(req.ID)
	return conflictErr(msg)
}

func (e *Engine) notifyDecided(requestID int64) {
	if e.listener != nil {
		e.listener.RequestDecided(requestID)
	}
}
