package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyChurnRisk(t *testing.T) {
	assert.Equal(t, RiskCritical, ClassifyChurnRisk(0))
	assert.Equal(t, RiskCritical, ClassifyChurnRisk(14))
	assert.Equal(t, RiskHigh, ClassifyChurnRisk(15))
	assert.Equal(t, RiskHigh, ClassifyChurnRisk(29))
	assert.Equal(t, RiskMedium, ClassifyChurnRisk(30))
	assert.Equal(t, RiskMedium, ClassifyChurnRisk(60))
}

func TestClassifyUtilization(t *testing.T) {
	assert.Equal(t, UtilizationHealthy, ClassifyUtilization(0))
	assert.Equal(t, UtilizationHealthy, ClassifyUtilization(79))
	assert.Equal(t, UtilizationAttention, ClassifyUtilization(80))
	assert.Equal(t, UtilizationAttention, ClassifyUtilization(100))
	assert.Equal(t, UtilizationOverloaded, ClassifyUtilization(101))
}

func TestCostTypeIsVariable(t *testing.T) {
	assert.True(t, CostVariavel.IsVariable())
	assert.True(t, CostDireto.IsVariable(), "direct costs roll up with variable costs")
	assert.False(t, CostFixo.IsVariable())
	assert.False(t, CostType("").IsVariable())
}

func TestTaskIsLate(t *testing.T) {
	today := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	late := Task{Status: TaskInProgress, Deadline: &yesterday}
	assert.True(t, late.IsLate(today))

	onTime := Task{Status: TaskTodo, Deadline: &tomorrow}
	assert.False(t, onTime.IsLate(today))

	noDeadline := Task{Status: TaskTodo}
	assert.False(t, noDeadline.IsLate(today))

	done := Task{Status: TaskDone, Deadline: &yesterday}
	assert.False(t, done.IsLate(today), "finished work is never late")
	waiting := Task{Status: TaskWaitingApproval, Deadline: &yesterday}
	assert.False(t, waiting.IsLate(today))
}

func TestProfileHelpers(t *testing.T) {
	p := Profile{}
	assert.Equal(t, DefaultWeeklyCapacityHours, p.EffectiveWeeklyCapacity())
	assert.False(t, p.HasCommission())

	p.WeeklyCapacityHours = 30
	p.CommissionPercent = decimal.NewFromInt(10)
	assert.Equal(t, 30, p.EffectiveWeeklyCapacity())
	assert.True(t, p.HasCommission())
}

func TestRequesterIsAdmin(t *testing.T) {
	assert.True(t, Requester{Roles: []string{"admin"}}.IsAdmin())
	assert.True(t, Requester{Roles: []string{"member", "admin"}}.IsAdmin())
	assert.False(t, Requester{Roles: []string{"member"}}.IsAdmin())
	assert.False(t, Requester{}.IsAdmin())
}
