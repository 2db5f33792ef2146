package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceAdd(t *testing.T) {
	b := &Balance{AnnualLeave: 10}

	assert.True(t, b.Add(FieldAnnual, -3))
	assert.Equal(t, 7, b.AnnualLeave)

	assert.True(t, b.Add(FieldAnnual, 3))
	assert.Equal(t, 10, b.AnnualLeave)
}

func TestBalanceAddClampsAtZero(t *testing.T) {
	b := &Balance{SickLeave: 2}

	assert.True(t, b.Add(FieldSick, -5))
	assert.Equal(t, 0, b.SickLeave)
}

func TestBalanceAddUnknownField(t *testing.T) {
	b := &Balance{AnnualLeave: 10}

	assert.False(t, b.Add("unpaid_leave", -3))
	assert.Equal(t, 10, b.AnnualLeave)
	assert.Equal(t, 0, b.Get("unpaid_leave"))
}

func TestBalanceGet(t *testing.T) {
	b := &Balance{
		AnnualLeave:    10,
		SickLeave:      30,
		PersonalLeave:  5,
		RelaxLeave:     1,
		MaternityLeave: 2,
		OtherLeave:     3,
	}

	assert.Equal(t, 10, b.Get(FieldAnnual))
	assert.Equal(t, 30, b.Get(FieldSick))
	assert.Equal(t, 5, b.Get(FieldPersonal))
	assert.Equal(t, 1, b.Get(FieldRelax))
	assert.Equal(t, 2, b.Get(FieldMaternity))
	assert.Equal(t, 3, b.Get(FieldOther))
}
