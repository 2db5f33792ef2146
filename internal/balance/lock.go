package balance

import (
	"sync"

	"github.com/google/uuid"
)

// EmployeeLocks serializes balance reconciliation per employee. Operations on
// different employees proceed in parallel; two mutations for the same employee
// queue behind one mutex for the duration of the read-modify-write. The
// database row lock taken inside the transaction covers multi-process
// deployments; this keeps a single process from even contending on it.
type EmployeeLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewEmployeeLocks() *EmployeeLocks {
	return &EmployeeLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the employee's mutex and returns the unlock function.
func (e *EmployeeLocks) Lock(employeeID uuid.UUID) func() {
	e.mu.Lock()
	m, ok := e.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		e.locks[employeeID] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}
