package workflow

import (
	"fmt"
	"time"

	"hostel-allocation-backend/internal/model"
)

// transitions is the request status machine. Approved and rejected have no
// outgoing edges; a decided request can never be reopened or redecided.
var transitions = map[model.RequestStatus][]model.RequestStatus{
	model.RequestPending: {model.RequestApproved, model.RequestRejected},
}

func canTransition(from, to model.RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// decide moves a request to a terminal status and stamps the decision fields.
// It fails for any transition the machine does not allow, so a terminal
// request cannot be mutated even by a buggy caller.
func decide(req *model.RoomRequest, to model.RequestStatus, adminID int64, at time.Time) error {
	if !canTransition(req.Status, to) {
		return conflictErr(fmt.Sprintf("request already processed (status %q)", req.Status))
	}
	req.Status = to
	req.DecisionByID = &adminID
	req.DecisionDate = &at
	return nil
}
