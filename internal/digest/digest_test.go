package digest

import (
	"context"
	"testing"
	"time"

	"leave-portal/internal/employee"
	"leave-portal/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeLeaveRepo struct {
	active []leave.Leave
}

func (r *fakeLeaveRepo) WithTx(tx *gorm.DB) leave.Repository                 { return r }
func (r *fakeLeaveRepo) Create(ctx context.Context, l *leave.Leave) error    { return nil }
func (r *fakeLeaveRepo) Update(ctx context.Context, l *leave.Leave) error    { return nil }
func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error         { return nil }
func (r *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeLeaveRepo) List(ctx context.Context, f leave.ListFilter) ([]leave.Leave, error) {
	return nil, nil
}
func (r *fakeLeaveRepo) ActiveOn(ctx context.Context, day time.Time) ([]leave.Leave, error) {
	return r.active, nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	managerEmails []string
	leadEmails    map[uuid.UUID][]string
}

func (r *fakeEmployeeRepo) OrgManagerEmails(ctx context.Context) ([]string, error) {
	return r.managerEmails, nil
}

func (r *fakeEmployeeRepo) TeamLeadEmails(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	return r.leadEmails[teamID], nil
}

type fakeMailer struct {
	sent     int
	lastTo   []string
	lastSubj string
	lastBody string
}

func (m *fakeMailer) Send(to []string, subject, htmlBody string) error {
	m.sent++
	m.lastTo = to
	m.lastSubj = subject
	m.lastBody = htmlBody
	return nil
}

func TestDigestSkipsQuietDays(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(&fakeLeaveRepo{}, &fakeEmployeeRepo{}, mail, zap.NewNop())

	err := svc.SendDaily(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Zero(t, mail.sent)
}

func TestDigestSendsToApprovers(t *testing.T) {
	teamID := uuid.New()
	emp := &employee.Employee{
		ID:       uuid.New(),
		FullName: "Ann Example",
		TeamID:   &teamID,
		Team:     &employee.Team{ID: teamID, Name: "Platform"},
	}
	day, _ := time.Parse("2006-01-02", "2026-03-02")

	leaves := &fakeLeaveRepo{active: []leave.Leave{{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		Employee:   emp,
		LeaveType:  leave.TypeAnnual,
		StartDate:  day,
		EndDate:    day.AddDate(0, 0, 2),
		Status:     leave.StatusApproved,
	}}}
	employees := &fakeEmployeeRepo{
		managerEmails: []string{"hr@example.com"},
		leadEmails:    map[uuid.UUID][]string{teamID: {"lead@example.com", "hr@example.com"}},
	}
	mail := &fakeMailer{}

	svc := NewService(leaves, employees, mail, zap.NewNop())
	assert.NoError(t, svc.SendDaily(context.Background(), day))

	assert.Equal(t, 1, mail.sent)
	// Recipients are deduplicated.
	assert.ElementsMatch(t, []string{"hr@example.com", "lead@example.com"}, mail.lastTo)
	assert.Contains(t, mail.lastSubj, "2026-03-02")
	assert.Contains(t, mail.lastBody, "Ann Example")
	assert.Contains(t, mail.lastBody, "Platform")
}
