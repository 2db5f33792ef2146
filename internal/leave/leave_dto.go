package leave

import (
	"time"

	"leave-portal/internal/balance"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=annual sick personal relax unpaid maternity other"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
	// Status lets an approver record a leave that is already granted; anyone
	// else is limited to pending.
	Status string `json:"status" binding:"omitempty,oneof=pending approved"`
}

type UpdateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=annual sick personal relax unpaid maternity other"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
	Status    string `json:"status" binding:"required,oneof=pending approved rejected"`
}

type ListQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	LeaveType  string `form:"leave_type" binding:"omitempty,oneof=annual sick personal relax unpaid maternity other"`
	Start      string `form:"start"`
	End        string `form:"end"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	TeamName     string `json:"team_name,omitempty"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	Deducted     bool   `json:"deducted"`
	CreatedAt    string `json:"created_at"`
}

// MutationResult is what every state-changing operation hands back: the
// persisted request and the balance it left behind.
type MutationResult struct {
	Leave          LeaveResponse           `json:"leave"`
	Balance        balance.BalanceResponse `json:"balance"`
	HolidayWarning bool                    `json:"holiday_warning,omitempty"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  DayCount(l.StartDate, l.EndDate),
		Reason:     l.Reason,
		Status:     l.Status,
		Deducted:   l.Deducted,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
		if l.Employee.Team != nil {
			resp.TeamName = l.Employee.Team.Name
		}
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
