package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leave-portal/internal/employee"
	"leave-portal/internal/leave"
	"leave-portal/internal/mailer"

	"go.uber.org/zap"
)

// Service assembles the daily "who is out today" email sent to approvers
// each morning.
type Service struct {
	leaves    leave.Repository
	employees employee.Repository
	mail      mailer.Mailer
	logger    *zap.Logger
}

func NewService(
	leaves leave.Repository,
	employees employee.Repository,
	mail mailer.Mailer,
	logger ...*zap.Logger,
) *Service {
	l := zap.L().Named("digest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("digest.service")
	}
	return &Service{leaves: leaves, employees: employees, mail: mail, logger: l}
}

// SendDaily emails the list of employees on approved leave on the given day.
// Recipients are the org-wide approvers plus the leads of every team with
// someone out. A day with nobody out sends nothing.
func (s *Service) SendDaily(ctx context.Context, day time.Time) error {
	out, err := s.leaves.ActiveOn(ctx, day)
	if err != nil {
		return err
	}
	if len(out) == 0 {
		s.logger.Info("no approved leave today, digest skipped",
			zap.String("day", day.Format("2006-01-02")),
		)
		return nil
	}

	recipients, err := s.recipients(ctx, out)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Warn("digest has no recipients", zap.String("day", day.Format("2006-01-02")))
		return nil
	}

	subject := fmt.Sprintf("Leave digest for %s: %d employee(s) out", day.Format("2006-01-02"), len(out))
	if err := s.mail.Send(recipients, subject, buildBody(day, out)); err != nil {
		return err
	}

	s.logger.Info("daily digest sent",
		zap.String("day", day.Format("2006-01-02")),
		zap.Int("entries", len(out)),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

func (s *Service) recipients(ctx context.Context, out []leave.Leave) ([]string, error) {
	seen := map[string]bool{}
	var emails []string

	add := func(list []string) {
		for _, e := range list {
			if !seen[e] {
				seen[e] = true
				emails = append(emails, e)
			}
		}
	}

	managers, err := s.employees.OrgManagerEmails(ctx)
	if err != nil {
		return nil, err
	}
	add(managers)

	teamsSeen := map[string]bool{}
	for _, l := range out {
		if l.Employee == nil || l.Employee.TeamID == nil {
			continue
		}
		teamID := *l.Employee.TeamID
		if teamsSeen[teamID.String()] {
			continue
		}
		teamsSeen[teamID.String()] = true

		leads, err := s.employees.TeamLeadEmails(ctx, teamID)
		if err != nil {
			return nil, err
		}
		add(leads)
	}
	return emails, nil
}

func buildBody(day time.Time, out []leave.Leave) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>On leave %s:</p><ul>", day.Format("2006-01-02"))
	for _, l := range out {
		name := l.EmployeeID.String()
		team := ""
		if l.Employee != nil {
			name = l.Employee.FullName
			if l.Employee.Team != nil {
				team = " (" + l.Employee.Team.Name + ")"
			}
		}
		fmt.Fprintf(&b, "<li>%s%s: %s, %s to %s</li>",
			name, team, l.LeaveType,
			l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}
