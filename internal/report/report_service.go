package report

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"leave-portal/internal/employee"
	"leave-portal/internal/rbac"
	reporterrors "leave-portal/internal/report/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	LeaveReport(ctx context.Context, actorID uuid.UUID, role string, q LeaveReportQuery) ([]LeaveReportRow, error)
	WriteCSV(w io.Writer, rows []LeaveReportRow) error
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) LeaveReport(ctx context.Context, actorID uuid.UUID, role string, q LeaveReportQuery) ([]LeaveReportRow, error) {
	f, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	if !rbac.IsOrgManager(role) {
		// A team lead reports on their own team only.
		me, err := s.employees.FindByID(ctx, actorID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, reporterrors.ErrNoReportScope
			}
			return nil, err
		}
		if !me.IsTeamLead || me.TeamID == nil {
			return nil, reporterrors.ErrNoReportScope
		}
		f.TeamID = me.TeamID
	}

	rows, err := s.repo.Query(ctx, f)
	if err != nil {
		s.logger.Error("leave report query failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("leave report generated",
		zap.String("actor_id", actorID.String()),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

var csvHeader = []string{
	"leave_id", "employee_name", "team_name", "leave_type",
	"start_date", "end_date", "total_days", "status", "deducted", "created_at",
}

func (s *service) WriteCSV(w io.Writer, rows []LeaveReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.LeaveID, r.EmployeeName, r.TeamName, r.LeaveType,
			r.StartDate, r.EndDate, strconv.Itoa(r.TotalDays),
			r.Status, strconv.FormatBool(r.Deducted), r.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func buildFilter(q LeaveReportQuery) (Filter, error) {
	f := Filter{
		Search:    q.Search,
		LeaveType: q.LeaveType,
		Status:    q.Status,
		MinDays:   q.MinDays,
		MaxDays:   q.MaxDays,
	}

	assign := func(v string, dst **time.Time) error {
		if v == "" {
			return nil
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return reporterrors.ErrInvalidDateFormat
		}
		*dst = &t
		return nil
	}

	if err := assign(q.Start, &f.From); err != nil {
		return Filter{}, err
	}
	if err := assign(q.End, &f.To); err != nil {
		return Filter{}, err
	}
	if err := assign(q.CreatedFrom, &f.CreatedFrom); err != nil {
		return Filter{}, err
	}
	if err := assign(q.CreatedTo, &f.CreatedTo); err != nil {
		return Filter{}, err
	}
	return f, nil
}
