package leave

import (
	"context"
	"testing"
	"time"

	"leave-portal/internal/balance"
	"leave-portal/internal/employee"
	leaveerrors "leave-portal/internal/leave/errors"
	"leave-portal/internal/messaging/kafka"
	"leave-portal/internal/rbac"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB backs gorm with sqlmock so db.Transaction issues real
// BEGIN/COMMIT pairs while the fake repositories absorb all row access.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.MatchExpectationsInOrder(false)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

type fakeLeaveRepo struct {
	leaves map[string]Leave
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: map[string]Leave{}}
}

func (r *fakeLeaveRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *fakeLeaveRepo) Create(ctx context.Context, l *Leave) error {
	r.leaves[l.ID.String()] = *l
	return nil
}

func (r *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*Leave, error) {
	l, ok := r.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := l
	return &copy, nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, f ListFilter) ([]Leave, error) {
	var out []Leave
	for _, l := range r.leaves {
		if f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLeaveRepo) Update(ctx context.Context, l *Leave) error {
	if _, ok := r.leaves[l.ID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.leaves[l.ID.String()] = *l
	return nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	delete(r.leaves, id)
	return nil
}

func (r *fakeLeaveRepo) ActiveOn(ctx context.Context, day time.Time) ([]Leave, error) {
	var out []Leave
	for _, l := range r.leaves {
		if l.Status == StatusApproved && !day.Before(l.StartDate) && !day.After(l.EndDate) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeBalanceRepo struct {
	balances map[uuid.UUID]balance.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: map[uuid.UUID]balance.Balance{}}
}

func (r *fakeBalanceRepo) WithTx(tx *gorm.DB) balance.Repository { return r }

func (r *fakeBalanceRepo) GetOrCreate(ctx context.Context, employeeID uuid.UUID) (*balance.Balance, error) {
	b, ok := r.balances[employeeID]
	if !ok {
		b = balance.Balance{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			AnnualLeave:   balance.DefaultAnnual,
			SickLeave:     balance.DefaultSick,
			PersonalLeave: balance.DefaultPersonal,
		}
		r.balances[employeeID] = b
	}
	copy := b
	return &copy, nil
}

func (r *fakeBalanceRepo) GetOrCreateForUpdate(ctx context.Context, employeeID uuid.UUID) (*balance.Balance, error) {
	return r.GetOrCreate(ctx, employeeID)
}

func (r *fakeBalanceRepo) Save(ctx context.Context, b *balance.Balance) error {
	r.balances[b.EmployeeID] = *b
	return nil
}

type fakeOutboxRepo struct {
	events []kafka.OutboxEvent
}

func (r *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return r }

func (r *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error   { return nil }
func (r *fakeOutboxRepo) MarkFailed(ctx context.Context, id, _ string) error { return nil }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
}

func (r *fakeEmployeeRepo) add(e employee.Employee) {
	r.employees[e.ID.String()] = e
}

func (r *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return r }

func (r *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	r.add(*e)
	return nil
}

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := e
	return &copy, nil
}

func (r *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			copy := e
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	r.add(*e)
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) CreateTeam(ctx context.Context, t *employee.Team) error { return nil }

func (r *fakeEmployeeRepo) FindAllTeams(ctx context.Context) ([]employee.Team, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) TeamLeadEmails(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) OrgManagerEmails(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fakeHolidayChecker struct {
	exists bool
}

func (f *fakeHolidayChecker) ExistsInRange(ctx context.Context, start, end time.Time) (bool, error) {
	return f.exists, nil
}

type serviceFixture struct {
	service   Service
	mock      sqlmock.Sqlmock
	leaves    *fakeLeaveRepo
	balances  *fakeBalanceRepo
	outbox    *fakeOutboxRepo
	employees *fakeEmployeeRepo
	holidays  *fakeHolidayChecker
}

func newServiceFixture(t *testing.T) *serviceFixture {
	db, mock := newTestDB(t)

	f := &serviceFixture{
		mock:      mock,
		leaves:    newFakeLeaveRepo(),
		balances:  newFakeBalanceRepo(),
		outbox:    &fakeOutboxRepo{},
		employees: newFakeEmployeeRepo(),
		holidays:  &fakeHolidayChecker{},
	}
	f.service = NewService(
		db, f.leaves, f.balances,
		balance.NewService(f.balances, nil, zap.NewNop()),
		balance.NewEmployeeLocks(),
		f.employees, f.outbox, f.holidays,
		zap.NewNop(),
	)
	return f
}

func (f *serviceFixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *serviceFixture) expectRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

func (f *serviceFixture) seedEmployee(teamID *uuid.UUID, isLead bool) Actor {
	e := employee.Employee{
		ID:         uuid.New(),
		FullName:   "Test Person",
		Email:      uuid.New().String() + "@example.com",
		TeamID:     teamID,
		IsTeamLead: isLead,
	}
	f.employees.add(e)
	role := rbac.RoleEmployee
	if isLead {
		role = rbac.RoleLead
	}
	return Actor{EmployeeID: e.ID, Role: role}
}

func TestServiceCreatePending(t *testing.T) {
	f := newServiceFixture(t)
	actor := f.seedEmployee(nil, false)
	f.expectTx()

	res, err := f.service.Create(context.Background(), actor, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "family visit",
	})
	assert.NoError(t, err)

	assert.Equal(t, StatusPending, res.Leave.Status)
	assert.Equal(t, 3, res.Leave.TotalDays)
	assert.False(t, res.Leave.Deducted)
	assert.Equal(t, balance.DefaultAnnual, res.Balance.AnnualLeave)

	assert.Len(t, f.outbox.events, 1)
	assert.Equal(t, "leave.requested", f.outbox.events[0].EventType)
}

func TestServiceCreateRejectsBadDates(t *testing.T) {
	f := newServiceFixture(t)
	actor := f.seedEmployee(nil, false)

	_, err := f.service.Create(context.Background(), actor, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-04",
		EndDate:   "2026-03-02",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	_, err = f.service.Create(context.Background(), actor, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "02-03-2026",
		EndDate:   "2026-03-04",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
}

func TestServiceCreateDirectApprovedNeedsApprover(t *testing.T) {
	f := newServiceFixture(t)
	actor := f.seedEmployee(nil, false)

	_, err := f.service.Create(context.Background(), actor, CreateLeaveRequest{
		LeaveType: TypeSick,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Status:    StatusApproved,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrDirectApproveForbidden)
}

func TestServiceManagerCreatesDirectApproved(t *testing.T) {
	f := newServiceFixture(t)
	manager := f.seedEmployee(nil, false)
	manager.Role = rbac.RoleManager
	f.expectTx()

	res, err := f.service.Create(context.Background(), manager, CreateLeaveRequest{
		LeaveType: TypeSick,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Status:    StatusApproved,
	})
	assert.NoError(t, err)

	assert.Equal(t, StatusApproved, res.Leave.Status)
	assert.True(t, res.Leave.Deducted)
	assert.Equal(t, balance.DefaultSick-1, res.Balance.SickLeave)
}

func TestServiceCreateFlagsHolidayOverlap(t *testing.T) {
	f := newServiceFixture(t)
	actor := f.seedEmployee(nil, false)
	f.holidays.exists = true
	f.expectTx()

	res, err := f.service.Create(context.Background(), actor, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)
	assert.True(t, res.HolidayWarning)
}

func TestServiceApproveDeducts(t *testing.T) {
	f := newServiceFixture(t)
	requester := f.seedEmployee(nil, false)
	manager := f.seedEmployee(nil, false)
	manager.Role = rbac.RoleManager

	f.expectTx()
	created, err := f.service.Create(context.Background(), requester, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)

	f.expectTx()
	res, err := f.service.Approve(context.Background(), manager, created.Leave.ID)
	assert.NoError(t, err)

	assert.Equal(t, StatusApproved, res.Leave.Status)
	assert.True(t, res.Leave.Deducted)
	assert.Equal(t, balance.DefaultAnnual-3, res.Balance.AnnualLeave)
}

func TestServiceApproveTwiceFails(t *testing.T) {
	f := newServiceFixture(t)
	requester := f.seedEmployee(nil, false)
	manager := f.seedEmployee(nil, false)
	manager.Role = rbac.RoleManager

	f.expectTx()
	created, err := f.service.Create(context.Background(), requester, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)

	f.expectTx()
	_, err = f.service.Approve(context.Background(), manager, created.Leave.ID)
	assert.NoError(t, err)

	f.expectRollback()
	_, err = f.service.Approve(context.Background(), manager, created.Leave.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrNotPending)

	// The balance holds exactly one deduction.
	b, err := f.balances.GetOrCreate(context.Background(), requester.EmployeeID)
	assert.NoError(t, err)
	assert.Equal(t, balance.DefaultAnnual-3, b.AnnualLeave)
}

func TestServiceEmployeeCannotApproveOwnRequest(t *testing.T) {
	f := newServiceFixture(t)
	teamID := uuid.New()
	lead := f.seedEmployee(&teamID, true)

	f.expectTx()
	created, err := f.service.Create(context.Background(), lead, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)

	_, err = f.service.Approve(context.Background(), lead, created.Leave.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrApproveOutsideScope)
}

func TestServiceLeadApprovesOwnTeamOnly(t *testing.T) {
	f := newServiceFixture(t)
	teamA := uuid.New()
	teamB := uuid.New()
	member := f.seedEmployee(&teamA, false)
	lead := f.seedEmployee(&teamA, true)
	otherLead := f.seedEmployee(&teamB, true)

	f.expectTx()
	created, err := f.service.Create(context.Background(), member, CreateLeaveRequest{
		LeaveType: TypePersonal,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
	})
	assert.NoError(t, err)

	_, err = f.service.Approve(context.Background(), otherLead, created.Leave.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrApproveOutsideScope)

	f.expectTx()
	res, err := f.service.Approve(context.Background(), lead, created.Leave.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Leave.Status)
}

func TestServiceDeleteApprovedRefunds(t *testing.T) {
	f := newServiceFixture(t)
	manager := f.seedEmployee(nil, false)
	manager.Role = rbac.RoleManager

	f.expectTx()
	created, err := f.service.Create(context.Background(), manager, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Status:    StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, balance.DefaultAnnual-3, created.Balance.AnnualLeave)

	f.expectTx()
	bal, err := f.service.Delete(context.Background(), manager, created.Leave.ID)
	assert.NoError(t, err)
	assert.Equal(t, balance.DefaultAnnual, bal.AnnualLeave)

	_, err = f.service.GetByID(context.Background(), manager, created.Leave.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestServiceUpdateByStrangerForbidden(t *testing.T) {
	f := newServiceFixture(t)
	owner := f.seedEmployee(nil, false)
	stranger := f.seedEmployee(nil, false)

	f.expectTx()
	created, err := f.service.Create(context.Background(), owner, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)

	_, err = f.service.Update(context.Background(), stranger, created.Leave.ID, UpdateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Status:    StatusPending,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
}

func TestServiceOwnerCannotSelfApproveViaUpdate(t *testing.T) {
	f := newServiceFixture(t)
	owner := f.seedEmployee(nil, false)

	f.expectTx()
	created, err := f.service.Create(context.Background(), owner, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)

	_, err = f.service.Update(context.Background(), owner, created.Leave.ID, UpdateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Status:    StatusApproved,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrApproveOutsideScope)
}

func TestServiceUpdateApprovedMovesQuota(t *testing.T) {
	f := newServiceFixture(t)
	manager := f.seedEmployee(nil, false)
	manager.Role = rbac.RoleManager

	f.expectTx()
	created, err := f.service.Create(context.Background(), manager, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
		Status:    StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, balance.DefaultAnnual-2, created.Balance.AnnualLeave)

	f.expectTx()
	res, err := f.service.Update(context.Background(), manager, created.Leave.ID, UpdateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
		Status:    StatusApproved,
	})
	assert.NoError(t, err)

	assert.Equal(t, 5, res.Leave.TotalDays)
	assert.Equal(t, balance.DefaultAnnual-5, res.Balance.AnnualLeave)
	assert.True(t, res.Leave.Deducted)
}

func TestServiceResolveEmailAction(t *testing.T) {
	f := newServiceFixture(t)
	requester := f.seedEmployee(nil, false)

	f.expectTx()
	created, err := f.service.Create(context.Background(), requester, CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	assert.NoError(t, err)

	f.expectTx()
	res, err := f.service.ResolveEmailAction(context.Background(), created.Leave.ID, "approve")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Leave.Status)

	// A second click reports the settled state instead of failing.
	f.expectRollback()
	res, err = f.service.ResolveEmailAction(context.Background(), created.Leave.ID, "approve")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Leave.Status)

	_, err = f.service.ResolveEmailAction(context.Background(), created.Leave.ID, "escalate")
	assert.ErrorIs(t, err, leaveerrors.ErrUnknownAction)
}

func TestServiceGetAllScopesByRole(t *testing.T) {
	f := newServiceFixture(t)
	teamID := uuid.New()
	member := f.seedEmployee(&teamID, false)
	other := f.seedEmployee(nil, false)
	lead := f.seedEmployee(&teamID, true)
	manager := f.seedEmployee(nil, false)
	manager.Role = rbac.RoleManager

	f.expectTx()
	_, err := f.service.Create(context.Background(), member, CreateLeaveRequest{
		LeaveType: TypeAnnual, StartDate: "2026-03-02", EndDate: "2026-03-04",
	})
	assert.NoError(t, err)

	f.expectTx()
	_, err = f.service.Create(context.Background(), other, CreateLeaveRequest{
		LeaveType: TypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
	})
	assert.NoError(t, err)

	own, err := f.service.GetAll(context.Background(), member, ListQuery{})
	assert.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Equal(t, member.EmployeeID.String(), own[0].EmployeeID)

	all, err := f.service.GetAll(context.Background(), manager, ListQuery{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// The lead filter scopes by team; the fake repo only filters by employee
	// and status, so just assert the call succeeds for a lead actor.
	_, err = f.service.GetAll(context.Background(), lead, ListQuery{})
	assert.NoError(t, err)
}
