package leave

import (
	"testing"
	"time"

	"leave-portal/internal/balance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newBalance() *balance.Balance {
	return &balance.Balance{
		EmployeeID:     uuid.New(),
		AnnualLeave:    balance.DefaultAnnual,
		SickLeave:      balance.DefaultSick,
		PersonalLeave:  balance.DefaultPersonal,
		RelaxLeave:     balance.DefaultRelax,
		MaternityLeave: balance.DefaultMaternity,
		OtherLeave:     balance.DefaultOther,
	}
}

func TestDayCount(t *testing.T) {
	assert.Equal(t, 1, DayCount(day("2026-03-02"), day("2026-03-02")))
	assert.Equal(t, 3, DayCount(day("2026-03-02"), day("2026-03-04")))
	assert.Equal(t, 31, DayCount(day("2026-03-01"), day("2026-03-31")))
}

func TestReconcileUpsert_CreatePendingDoesNotTouchBalance(t *testing.T) {
	l := &Leave{LeaveType: TypeAnnual, StartDate: day("2026-03-02"), EndDate: day("2026-03-04"), Status: StatusPending}

	rec := ReconcileUpsert(nil, l)

	assert.Empty(t, rec.Deltas)
	assert.False(t, rec.Deducted)
}

func TestReconcileUpsert_ApproveDeductsOnce(t *testing.T) {
	b := newBalance()
	old := &Leave{LeaveType: TypeAnnual, StartDate: day("2026-03-02"), EndDate: day("2026-03-04"), Status: StatusPending}
	next := *old
	next.Status = StatusApproved

	rec := ReconcileUpsert(old, &next)
	apply(b, rec)

	assert.True(t, rec.Deducted)
	assert.Equal(t, 7, b.AnnualLeave)
}

func TestReconcileUpsert_DirectApprovedCreateDeducts(t *testing.T) {
	b := newBalance()
	l := &Leave{LeaveType: TypeSick, StartDate: day("2026-03-02"), EndDate: day("2026-03-02"), Status: StatusApproved}

	rec := ReconcileUpsert(nil, l)
	apply(b, rec)

	assert.True(t, rec.Deducted)
	assert.Equal(t, 29, b.SickLeave)
}

func TestReconcileUpsert_RetryOfSameTransitionIsNoOp(t *testing.T) {
	b := newBalance()
	old := &Leave{LeaveType: TypeAnnual, StartDate: day("2026-03-02"), EndDate: day("2026-03-04"), Status: StatusPending}
	next := *old
	next.Status = StatusApproved

	rec := ReconcileUpsert(old, &next)
	apply(b, rec)
	next.Deducted = rec.Deducted

	// A repeat of the same approved -> approved state with deducted already
	// set must not move the balance again.
	again := next
	rec2 := ReconcileUpsert(&next, &again)
	apply(b, rec2)

	assert.True(t, rec2.Deducted)
	assert.Equal(t, 7, b.AnnualLeave)
}

func TestReconcileUpsert_ExtendApprovedLeaveSettlesNet(t *testing.T) {
	b := newBalance()
	b.AnnualLeave = 8 // 10 minus the 2 days already deducted

	old := &Leave{
		LeaveType: TypeAnnual,
		StartDate: day("2026-03-02"), EndDate: day("2026-03-03"),
		Status: StatusApproved, Deducted: true,
	}
	next := *old
	next.EndDate = day("2026-03-06")

	rec := ReconcileUpsert(old, &next)
	apply(b, rec)

	// Refund 2, deduct 5.
	assert.True(t, rec.Deducted)
	assert.Equal(t, 5, b.AnnualLeave)
}

func TestReconcileUpsert_RejectAfterApprovalRefunds(t *testing.T) {
	b := newBalance()
	b.AnnualLeave = 7

	old := &Leave{
		LeaveType: TypeAnnual,
		StartDate: day("2026-03-02"), EndDate: day("2026-03-04"),
		Status: StatusApproved, Deducted: true,
	}
	next := *old
	next.Status = StatusRejected

	rec := ReconcileUpsert(old, &next)
	apply(b, rec)

	assert.False(t, rec.Deducted)
	assert.Equal(t, 10, b.AnnualLeave)
}

func TestReconcileUpsert_SwitchToUnpaidRefundsAndClearsFlag(t *testing.T) {
	b := newBalance()
	b.AnnualLeave = 7

	old := &Leave{
		LeaveType: TypeAnnual,
		StartDate: day("2026-03-02"), EndDate: day("2026-03-04"),
		Status: StatusApproved, Deducted: true,
	}
	next := *old
	next.LeaveType = TypeUnpaid

	rec := ReconcileUpsert(old, &next)
	apply(b, rec)

	// Approved unpaid leave holds no quota, so deducted must stay false.
	assert.False(t, rec.Deducted)
	assert.Equal(t, 10, b.AnnualLeave)
}

func TestReconcileUpsert_ApprovedUnpaidCreateNeverDeducts(t *testing.T) {
	b := newBalance()
	l := &Leave{LeaveType: TypeUnpaid, StartDate: day("2026-03-02"), EndDate: day("2026-03-13"), Status: StatusApproved}

	rec := ReconcileUpsert(nil, l)
	apply(b, rec)

	assert.False(t, rec.Deducted)
	assert.Equal(t, balance.DefaultAnnual, b.AnnualLeave)
	assert.Equal(t, balance.DefaultSick, b.SickLeave)
}

func TestReconcileUpsert_SwitchTypeMovesQuotaBetweenCounters(t *testing.T) {
	b := newBalance()
	b.AnnualLeave = 7

	old := &Leave{
		LeaveType: TypeAnnual,
		StartDate: day("2026-03-02"), EndDate: day("2026-03-04"),
		Status: StatusApproved, Deducted: true,
	}
	next := *old
	next.LeaveType = TypeSick

	rec := ReconcileUpsert(old, &next)
	apply(b, rec)

	assert.True(t, rec.Deducted)
	assert.Equal(t, 10, b.AnnualLeave)
	assert.Equal(t, 27, b.SickLeave)
}

func TestReconcileUpsert_DeductionClampsAtZero(t *testing.T) {
	b := newBalance()
	b.PersonalLeave = 2

	l := &Leave{LeaveType: TypePersonal, StartDate: day("2026-03-02"), EndDate: day("2026-03-06"), Status: StatusApproved}

	rec := ReconcileUpsert(nil, l)
	apply(b, rec)

	assert.True(t, rec.Deducted)
	assert.Equal(t, 0, b.PersonalLeave)
}

func TestReconcileDelete_RefundsOnlyHeldQuota(t *testing.T) {
	held := &Leave{
		LeaveType: TypeAnnual,
		StartDate: day("2026-03-02"), EndDate: day("2026-03-04"),
		Status: StatusApproved, Deducted: true,
	}
	rec := ReconcileDelete(held)
	assert.Equal(t, []Delta{{Field: balance.FieldAnnual, Days: 3}}, rec.Deltas)

	pending := &Leave{LeaveType: TypeAnnual, StartDate: day("2026-03-02"), EndDate: day("2026-03-04"), Status: StatusPending}
	assert.Empty(t, ReconcileDelete(pending).Deltas)

	unpaid := &Leave{LeaveType: TypeUnpaid, StartDate: day("2026-03-02"), EndDate: day("2026-03-04"), Status: StatusApproved}
	assert.Empty(t, ReconcileDelete(unpaid).Deltas)
}

func TestFullRoundTrip(t *testing.T) {
	b := newBalance()

	// Create pending, approve, then delete: balance returns to the default.
	l := &Leave{LeaveType: TypeAnnual, StartDate: day("2026-03-02"), EndDate: day("2026-03-04"), Status: StatusPending}
	rec := ReconcileUpsert(nil, l)
	apply(b, rec)
	l.Deducted = rec.Deducted
	assert.Equal(t, 10, b.AnnualLeave)

	old := *l
	l.Status = StatusApproved
	rec = ReconcileUpsert(&old, l)
	apply(b, rec)
	l.Deducted = rec.Deducted
	assert.Equal(t, 7, b.AnnualLeave)

	rec = ReconcileDelete(l)
	apply(b, rec)
	assert.Equal(t, 10, b.AnnualLeave)
}

func TestBalanceField(t *testing.T) {
	field, ok := BalanceField(TypeAnnual)
	assert.True(t, ok)
	assert.Equal(t, balance.FieldAnnual, field)

	_, ok = BalanceField(TypeUnpaid)
	assert.False(t, ok)

	_, ok = BalanceField("sabbatical")
	assert.False(t, ok)
}
