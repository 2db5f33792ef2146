package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequestedType     = "leave.requested"
	LeaveStatusChangedType = "leave.status_changed"
	LeaveDeletedType       = "leave.deleted"
)

// LeaveLifecycleEvent is the collaborator-facing record of a leave request
// mutation, written to the outbox in the same transaction as the
// reconciliation so downstream consumers never see a phantom change.
type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalDays  int       `json:"total_days"`
	Status     string    `json:"status"`
	Deducted   bool      `json:"deducted"`
	OccurredAt time.Time `json:"occurred_at"`
}
