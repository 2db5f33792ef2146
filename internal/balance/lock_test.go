package balance

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmployeeLocksSerializePerEmployee(t *testing.T) {
	locks := NewEmployeeLocks()
	employeeID := uuid.New()
	b := &Balance{AnnualLeave: 10}

	// 10 concurrent 1-day deductions must all land: no lost updates.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(employeeID)
			defer unlock()
			b.Add(FieldAnnual, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, b.AnnualLeave)
}

func TestEmployeeLocksIndependentEmployees(t *testing.T) {
	locks := NewEmployeeLocks()
	first := uuid.New()
	second := uuid.New()

	unlockFirst := locks.Lock(first)
	defer unlockFirst()

	// Holding first must not block second.
	done := make(chan struct{})
	go func() {
		unlock := locks.Lock(second)
		unlock()
		close(done)
	}()
	<-done
}

func TestEmployeeLocksReacquireAfterUnlock(t *testing.T) {
	locks := NewEmployeeLocks()
	employeeID := uuid.New()

	unlock := locks.Lock(employeeID)
	unlock()

	unlock = locks.Lock(employeeID)
	unlock()
}
