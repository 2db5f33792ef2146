package report

type LeaveReportQuery struct {
	Search    string `form:"q"`
	LeaveType string `form:"leave_type" binding:"omitempty,oneof=annual sick personal relax unpaid maternity other"`
	Status    string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	// Start/End select requests whose date range overlaps the window.
	Start       string `form:"start"`
	End         string `form:"end"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
	MinDays     int    `form:"min_days" binding:"omitempty,min=1"`
	MaxDays     int    `form:"max_days" binding:"omitempty,min=1"`
}

type LeaveReportRow struct {
	LeaveID      string `json:"leave_id"`
	EmployeeName string `json:"employee_name"`
	TeamName     string `json:"team_name"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	Status       string `json:"status"`
	Deducted     bool   `json:"deducted"`
	CreatedAt    string `json:"created_at"`
}
