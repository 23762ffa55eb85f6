package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPutAndGet(t *testing.T) {
	c := New(time.Minute)

	c.Put("org-1", "report", 42, KindTransaction)

	v, ok := c.Get("org-1", "report")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Get("org-1", "other")
	assert.False(t, ok)
	_, ok = c.Get("org-2", "report")
	assert.False(t, ok, "entries are scoped per organization")
}

func TestInvalidateByKind(t *testing.T) {
	c := New(0)

	c.Put("org-1", "profitability", "a", KindTransaction, KindProject, KindClient)
	c.Put("org-1", "workload", "b", KindTask, KindProfile)
	c.Put("org-2", "profitability", "c", KindTransaction)

	c.Invalidate("org-1", KindTransaction)

	_, ok := c.Get("org-1", "profitability")
	assert.False(t, ok, "aggregate derived from the mutated kind is dropped")
	v, ok := c.Get("org-1", "workload")
	assert.True(t, ok, "unrelated aggregate survives")
	assert.Equal(t, "b", v)
	_, ok = c.Get("org-2", "profitability")
	assert.True(t, ok, "other organizations are untouched")
}

func TestInvalidateAnyDerivedKind(t *testing.T) {
	c := New(0)
	c.Put("org-1", "profitability", "a", KindTransaction, KindProject, KindClient)

	// Any of the declared kinds drops the entry, not just the first.
	c.Invalidate("org-1", KindClient)
	_, ok := c.Get("org-1", "profitability")
	assert.False(t, ok)
}

func TestMaxAgeExpiry(t *testing.T) {
	c := New(time.Nanosecond)
	c.Put("org-1", "report", 1, KindDeal)

	time.Sleep(time.Millisecond)
	_, ok := c.Get("org-1", "report")
	assert.False(t, ok, "entry past maxAge is a miss")
}

func TestZeroMaxAgeNeverExpires(t *testing.T) {
	c := New(0)
	c.Put("org-1", "report", 1, KindDeal)

	v, ok := c.Get("org-1", "report")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
