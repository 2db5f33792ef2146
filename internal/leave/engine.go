package leave

import (
	"time"

	"leave-portal/internal/balance"
)

// balanceFieldMap names the balance counter each leave type draws from.
// "unpaid" is deliberately absent: unpaid leave never touches quota, no
// matter what status the request is in.
var balanceFieldMap = map[string]string{
	TypeAnnual:    balance.FieldAnnual,
	TypeSick:      balance.FieldSick,
	TypePersonal:  balance.FieldPersonal,
	TypeRelax:     balance.FieldRelax,
	TypeMaternity: balance.FieldMaternity,
	TypeOther:     balance.FieldOther,
}

// BalanceField resolves a leave type to its counter; ok is false for unpaid
// and unknown types.
func BalanceField(leaveType string) (string, bool) {
	field, ok := balanceFieldMap[leaveType]
	return field, ok
}

// DayCount is the inclusive span of a request: both endpoints count.
func DayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Delta is one signed quota movement: positive days refund, negative deduct.
type Delta struct {
	Field string
	Days  int
}

// Reconciliation is the engine's verdict for a single request mutation: the
// quota movements to apply and the deducted flag that must be persisted with
// the request in the same atomic unit.
type Reconciliation struct {
	Deltas   []Delta
	Deducted bool
}

// ReconcileUpsert decides the balance movement implied by persisting next
// over old; old is nil for a first-time create, which also covers a request
// born directly in approved status. Refund is always evaluated before
// deduction, so an edit that moves the dates, switches the type, or bounces
// the status away from approved and back settles correctly in one pass.
//
// Invariants honored:
//   - deducted == true only ever alongside status == approved
//   - a request deducts at most once (the deducted flag gates re-deduction,
//     which makes a retried reconcile of the same transition a no-op)
func ReconcileUpsert(old, next *Leave) Reconciliation {
	rec := Reconciliation{Deducted: next.Deducted}

	if old != nil && old.Deducted && old.Status == StatusApproved {
		if field, ok := BalanceField(old.LeaveType); ok {
			rec.Deltas = append(rec.Deltas, Delta{
				Field: field,
				Days:  DayCount(old.StartDate, old.EndDate),
			})
		}
		// Give back the old deduction first, then judge the new state fresh.
		rec.Deducted = false
	}

	if next.Status == StatusApproved && !rec.Deducted {
		if field, ok := BalanceField(next.LeaveType); ok {
			rec.Deltas = append(rec.Deltas, Delta{
				Field: field,
				Days:  -DayCount(next.StartDate, next.EndDate),
			})
			rec.Deducted = true
		}
	}

	return rec
}

// ReconcileDelete refunds a vanishing request's days if, and only if, they
// are currently held against the balance.
func ReconcileDelete(existing *Leave) Reconciliation {
	if existing.Status != StatusApproved || !existing.Deducted {
		return Reconciliation{}
	}
	field, ok := BalanceField(existing.LeaveType)
	if !ok {
		return Reconciliation{}
	}
	return Reconciliation{
		Deltas: []Delta{{
			Field: field,
			Days:  DayCount(existing.StartDate, existing.EndDate),
		}},
	}
}

// apply runs the engine's verdict against a balance snapshot. Deductions are
// clamped at zero inside Balance.Add; the clamp is policy, not an error.
func apply(b *balance.Balance, rec Reconciliation) {
	for _, d := range rec.Deltas {
		b.Add(d.Field, d.Days)
	}
}
