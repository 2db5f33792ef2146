package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"leave-portal/internal/balance"
	"leave-portal/internal/employee"
	"leave-portal/internal/events"
	leaveerrors "leave-portal/internal/leave/errors"
	"leave-portal/internal/messaging/kafka"
	"leave-portal/internal/rbac"
	"leave-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor identifies who is performing a mutation; the role comes straight from
// the auth token, team scope is resolved against the employee record.
type Actor struct {
	EmployeeID uuid.UUID
	Role       string
}

// HolidayChecker is the thin slice of the holiday module the lifecycle needs:
// creating a request that spans a company holiday is allowed but flagged.
type HolidayChecker interface {
	ExistsInRange(ctx context.Context, start, end time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (MutationResult, error)
	GetAll(ctx context.Context, actor Actor, q ListQuery) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (MutationResult, error)
	Approve(ctx context.Context, actor Actor, id string) (MutationResult, error)
	Reject(ctx context.Context, actor Actor, id string) (MutationResult, error)
	Delete(ctx context.Context, actor Actor, id string) (balance.BalanceResponse, error)

	// ResolveEmailAction services the one-click links sent to approvers. The
	// token layer has already authenticated the link; a request that is no
	// longer pending is returned unchanged.
	ResolveEmailAction(ctx context.Context, leaveID, action string) (MutationResult, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	balances  balance.Repository
	cache     balance.Service
	locks     *balance.EmployeeLocks
	employees employee.Repository
	outbox    kafka.OutboxRepository
	holidays  HolidayChecker
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	balances balance.Repository,
	cache balance.Service,
	locks *balance.EmployeeLocks,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	holidays HolidayChecker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		cache:     cache,
		locks:     locks,
		employees: employees,
		outbox:    outbox,
		holidays:  holidays,
		logger:    l,
	}
}

// isConcurrencyFailure picks out storage conflicts that mean "retry the whole
// mutation" rather than "the request was bad".
func isConcurrencyFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure, deadlock_detected, lock_not_available
	return pgErr.Code == "40001" || pgErr.Code == "40P01" || pgErr.Code == "55P03"
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (MutationResult, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actor.EmployeeID.String()),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return MutationResult{}, err
	}

	employeeID := actor.EmployeeID
	if req.EmployeeID != "" {
		employeeID, err = uuid.Parse(req.EmployeeID)
		if err != nil {
			return MutationResult{}, leaveerrors.ErrInvalidEmployeeID
		}
		if employeeID != actor.EmployeeID && !rbac.IsOrgManager(actor.Role) {
			return MutationResult{}, leaveerrors.ErrNotRequestOwner
		}
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if status == StatusApproved {
		// The normal flow is pending first; skipping it is an approver move.
		allowed, err := s.canModerateEmployee(ctx, actor, employeeID)
		if err != nil {
			return MutationResult{}, err
		}
		if !allowed {
			return MutationResult{}, leaveerrors.ErrDirectApproveForbidden
		}
	}

	holidayWarning := false
	if s.holidays != nil {
		if exists, err := s.holidays.ExistsInRange(ctx, startDate, endDate); err == nil {
			holidayWarning = exists
		}
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     status,
	}

	bal, err := s.withEmployeeLock(ctx, employeeID, func(tx *gorm.DB, b *balance.Balance) error {
		rec := ReconcileUpsert(nil, l)
		apply(b, rec)
		l.Deducted = rec.Deducted

		if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, l, events.LeaveRequestedType)
	})
	if err != nil {
		s.logger.Error("create leave failed", zap.Error(err))
		return MutationResult{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("status", l.Status),
		zap.Bool("deducted", l.Deducted),
	)

	return MutationResult{
		Leave:          mapToResponse(*l),
		Balance:        balance.MapToResponse(*bal),
		HolidayWarning: holidayWarning,
	}, nil
}

func (s *service) GetAll(ctx context.Context, actor Actor, q ListQuery) ([]LeaveResponse, error) {
	filter, err := s.visibleFilter(ctx, actor, q)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	l, err := s.findLeave(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if l.EmployeeID != actor.EmployeeID {
		allowed, err := s.canModerate(ctx, actor, l)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !allowed {
			return LeaveResponse{}, leaveerrors.ErrApproveOutsideScope
		}
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (MutationResult, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID.String()),
		zap.String("target_status", req.Status),
	)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return MutationResult{}, err
	}

	// Load outside the lock only to decide permissions; the authoritative
	// previous state is re-read inside the transaction.
	probe, err := s.findLeave(ctx, s.repo, id)
	if err != nil {
		return MutationResult{}, err
	}
	if err := s.authorizeMutation(ctx, actor, probe, req.Status != probe.Status); err != nil {
		return MutationResult{}, err
	}

	var l *Leave
	bal, err := s.withEmployeeLock(ctx, probe.EmployeeID, func(tx *gorm.DB, b *balance.Balance) error {
		l, err = s.findLeave(ctx, s.repo.WithTx(tx), id)
		if err != nil {
			return err
		}

		// Capture the previous state before it is overwritten; the engine
		// needs old and new side by side.
		old := *l

		l.LeaveType = req.LeaveType
		l.StartDate = startDate
		l.EndDate = endDate
		l.Reason = req.Reason
		l.Status = req.Status

		rec := ReconcileUpsert(&old, l)
		apply(b, rec)
		l.Deducted = rec.Deducted

		if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
			return err
		}
		if old.Status != l.Status {
			return s.enqueueEvent(ctx, tx, l, events.LeaveStatusChangedType)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("update leave failed", zap.String("leave_id", id), zap.Error(err))
		return MutationResult{}, err
	}

	s.logger.Info("update leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.Bool("deducted", l.Deducted),
	)

	return MutationResult{
		Leave:   mapToResponse(*l),
		Balance: balance.MapToResponse(*bal),
	}, nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id string) (MutationResult, error) {
	return s.transition(ctx, &actor, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actor Actor, id string) (MutationResult, error) {
	return s.transition(ctx, &actor, id, StatusRejected)
}

func (s *service) ResolveEmailAction(ctx context.Context, leaveID, action string) (MutationResult, error) {
	var target string
	switch action {
	case "approve":
		target = StatusApproved
	case "reject":
		target = StatusRejected
	default:
		return MutationResult{}, leaveerrors.ErrUnknownAction
	}

	res, err := s.transition(ctx, nil, leaveID, target)
	if errors.Is(err, leaveerrors.ErrNotPending) {
		// Someone already acted on it; the link shows the current state.
		l, ferr := s.findLeave(ctx, s.repo, leaveID)
		if ferr != nil {
			return MutationResult{}, ferr
		}
		b, ferr := s.cache.GetBalance(ctx, l.EmployeeID)
		if ferr != nil {
			return MutationResult{}, ferr
		}
		return MutationResult{Leave: mapToResponse(*l), Balance: b}, nil
	}
	return res, err
}

// transition moves a pending request to approved or rejected. A nil actor is
// a pre-authorized caller (validated email token).
func (s *service) transition(ctx context.Context, actor *Actor, id, targetStatus string) (MutationResult, error) {
	actorID := "email-token"
	if actor != nil {
		actorID = actor.EmployeeID.String()
	}
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	probe, err := s.findLeave(ctx, s.repo, id)
	if err != nil {
		return MutationResult{}, err
	}
	if actor != nil {
		allowed, err := s.canModerate(ctx, *actor, probe)
		if err != nil {
			return MutationResult{}, err
		}
		if !allowed {
			return MutationResult{}, leaveerrors.ErrApproveOutsideScope
		}
	}

	var l *Leave
	bal, err := s.withEmployeeLock(ctx, probe.EmployeeID, func(tx *gorm.DB, b *balance.Balance) error {
		l, err = s.findLeave(ctx, s.repo.WithTx(tx), id)
		if err != nil {
			return err
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrNotPending
		}

		old := *l
		l.Status = targetStatus

		rec := ReconcileUpsert(&old, l)
		apply(b, rec)
		l.Deducted = rec.Deducted

		if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, l, events.LeaveStatusChangedType)
	})
	if err != nil {
		if !errors.Is(err, leaveerrors.ErrNotPending) {
			s.logger.Error("transition leave status failed",
				zap.String("leave_id", id),
				zap.String("target_status", targetStatus),
				zap.Error(err),
			)
		}
		return MutationResult{}, err
	}

	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.Bool("deducted", l.Deducted),
	)

	return MutationResult{
		Leave:   mapToResponse(*l),
		Balance: balance.MapToResponse(*bal),
	}, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id string) (balance.BalanceResponse, error) {
	probe, err := s.findLeave(ctx, s.repo, id)
	if err != nil {
		return balance.BalanceResponse{}, err
	}
	if err := s.authorizeMutation(ctx, actor, probe, false); err != nil {
		return balance.BalanceResponse{}, err
	}

	bal, err := s.withEmployeeLock(ctx, probe.EmployeeID, func(tx *gorm.DB, b *balance.Balance) error {
		l, err := s.findLeave(ctx, s.repo.WithTx(tx), id)
		if err != nil {
			return err
		}

		rec := ReconcileDelete(l)
		apply(b, rec)

		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, l, events.LeaveDeletedType)
	})
	if err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return balance.BalanceResponse{}, err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return balance.MapToResponse(*bal), nil
}

// withEmployeeLock runs fn inside the per-employee mutex and one database
// transaction holding the balance row lock. The balance write, the request
// write, and the outbox record commit or roll back as one unit.
func (s *service) withEmployeeLock(
	ctx context.Context,
	employeeID uuid.UUID,
	fn func(tx *gorm.DB, b *balance.Balance) error,
) (*balance.Balance, error) {
	unlock := s.locks.Lock(employeeID)
	defer unlock()

	var bal *balance.Balance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		bal, err = s.balances.WithTx(tx).GetOrCreateForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := fn(tx, bal); err != nil {
			return err
		}
		return s.balances.WithTx(tx).Save(ctx, bal)
	})
	if err != nil {
		if isConcurrencyFailure(err) {
			return nil, leaveerrors.ErrReconciliationConflict
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, employeeID)
	}
	return bal, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *gorm.DB, l *Leave, eventType string) error {
	payload, err := json.Marshal(events.LeaveLifecycleEvent{
		EventType:  eventType,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  DayCount(l.StartDate, l.EndDate),
		Status:     l.Status,
		Deducted:   l.Deducted,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) findLeave(ctx context.Context, repo Repository, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

// canModerate reports whether the actor may approve, reject, or otherwise
// act on someone else's request: org managers anywhere, team leads within
// their own team but never on their own requests.
func (s *service) canModerate(ctx context.Context, actor Actor, target *Leave) (bool, error) {
	if rbac.IsOrgManager(actor.Role) {
		return true, nil
	}
	if target.EmployeeID == actor.EmployeeID {
		return false, nil
	}
	return s.leadsTeamOf(ctx, actor, target.EmployeeID)
}

func (s *service) canModerateEmployee(ctx context.Context, actor Actor, employeeID uuid.UUID) (bool, error) {
	if rbac.IsOrgManager(actor.Role) {
		return true, nil
	}
	if employeeID == actor.EmployeeID {
		return false, nil
	}
	return s.leadsTeamOf(ctx, actor, employeeID)
}

func (s *service) leadsTeamOf(ctx context.Context, actor Actor, employeeID uuid.UUID) (bool, error) {
	me, err := s.employees.FindByID(ctx, actor.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if !me.IsTeamLead || me.TeamID == nil {
		return false, nil
	}

	them, err := s.employees.FindByID(ctx, employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return them.TeamID != nil && *them.TeamID == *me.TeamID, nil
}

// authorizeMutation covers edits and deletes: the requester may change their
// own request but not its status; status changes and edits to others need
// moderation scope.
func (s *service) authorizeMutation(ctx context.Context, actor Actor, target *Leave, changesStatus bool) error {
	if target.EmployeeID == actor.EmployeeID {
		if changesStatus && !rbac.IsOrgManager(actor.Role) {
			return leaveerrors.ErrApproveOutsideScope
		}
		return nil
	}

	allowed, err := s.canModerate(ctx, actor, target)
	if err != nil {
		return err
	}
	if !allowed {
		return leaveerrors.ErrNotRequestOwner
	}
	return nil
}

// visibleFilter translates the actor's role into the repository filter:
// managers see everything, leads see their team (their own requests via the
// explicit employee filter), everyone else only themselves.
func (s *service) visibleFilter(ctx context.Context, actor Actor, q ListQuery) (ListFilter, error) {
	f := ListFilter{
		Status:    q.Status,
		LeaveType: q.LeaveType,
	}

	if q.Start != "" {
		t, err := parseDate(q.Start)
		if err != nil {
			return ListFilter{}, err
		}
		f.OverlapsFrom = &t
	}
	if q.End != "" {
		t, err := parseDate(q.End)
		if err != nil {
			return ListFilter{}, err
		}
		f.OverlapsTo = &t
	}

	if q.EmployeeID != "" {
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return ListFilter{}, leaveerrors.ErrInvalidEmployeeID
		}
		f.EmployeeID = &id
	}

	if rbac.IsOrgManager(actor.Role) {
		return f, nil
	}

	me, err := s.employees.FindByID(ctx, actor.EmployeeID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ListFilter{}, err
	}

	if err == nil && me.IsTeamLead && me.TeamID != nil {
		if f.EmployeeID != nil && *f.EmployeeID == actor.EmployeeID {
			return f, nil
		}
		f.TeamID = me.TeamID
		excl := actor.EmployeeID
		f.ExcludeEmployeeID = &excl
		return f, nil
	}

	own := actor.EmployeeID
	f.EmployeeID = &own
	return f, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
