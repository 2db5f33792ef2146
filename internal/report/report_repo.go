package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	// TeamID and EmployeeID narrow the report to the caller's scope; the
	// service resolves them from the caller's role before querying.
	TeamID     *uuid.UUID
	EmployeeID *uuid.UUID

	Search      string
	LeaveType   string
	Status      string
	From        *time.Time
	To          *time.Time
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	MinDays     int
	MaxDays     int
}

// row is the flat join shape the report query scans into.
type row struct {
	LeaveID      string
	EmployeeName string
	TeamName     string
	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	TotalDays    int
	Status       string
	Deducted     bool
	CreatedAt    time.Time
}

type Repository interface {
	Query(ctx context.Context, f Filter) ([]LeaveReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Query(ctx context.Context, f Filter) ([]LeaveReportRow, error) {
	db := r.db.WithContext(ctx).
		Table("leaves").
		Select(`
			leaves.id::text AS leave_id,
			employees.full_name AS employee_name,
			COALESCE(teams.name, '') AS team_name,
			leaves.leave_type,
			leaves.start_date,
			leaves.end_date,
			(leaves.end_date - leaves.start_date + 1) AS total_days,
			leaves.status,
			leaves.deducted,
			leaves.created_at`).
		Joins("JOIN employees ON employees.id = leaves.employee_id").
		Joins("LEFT JOIN teams ON teams.id = employees.team_id")

	if f.TeamID != nil {
		db = db.Where("employees.team_id = ?", *f.TeamID)
	}
	if f.EmployeeID != nil {
		db = db.Where("leaves.employee_id = ?", *f.EmployeeID)
	}
	if f.Search != "" {
		db = db.Where("employees.full_name ILIKE ?", "%"+f.Search+"%")
	}
	if f.LeaveType != "" {
		db = db.Where("leaves.leave_type = ?", f.LeaveType)
	}
	if f.Status != "" {
		db = db.Where("leaves.status = ?", f.Status)
	}
	if f.From != nil {
		db = db.Where("leaves.end_date >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("leaves.start_date <= ?", *f.To)
	}
	if f.CreatedFrom != nil {
		db = db.Where("leaves.created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		db = db.Where("leaves.created_at < ?", *f.CreatedTo)
	}
	if f.MinDays > 0 {
		db = db.Where("(leaves.end_date - leaves.start_date + 1) >= ?", f.MinDays)
	}
	if f.MaxDays > 0 {
		db = db.Where("(leaves.end_date - leaves.start_date + 1) <= ?", f.MaxDays)
	}

	var rows []row
	if err := db.Order("leaves.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]LeaveReportRow, len(rows))
	for i, r := range rows {
		out[i] = LeaveReportRow{
			LeaveID:      r.LeaveID,
			EmployeeName: r.EmployeeName,
			TeamName:     r.TeamName,
			LeaveType:    r.LeaveType,
			StartDate:    r.StartDate.Format("2006-01-02"),
			EndDate:      r.EndDate.Format("2006-01-02"),
			TotalDays:    r.TotalDays,
			Status:       r.Status,
			Deducted:     r.Deducted,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}
