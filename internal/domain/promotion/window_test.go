package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "quokkalist/internal/domain/promotion/valueobjects"
)

func TestNewWindow(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	t.Run("valid", func(t *testing.T) {
		w, err := NewWindow("srv-1", vo.PlanBasic, start, end)
		require.NoError(t, err)
		assert.Equal(t, "srv-1", w.ServerID())
		assert.Equal(t, start, w.StartAt())
		assert.Equal(t, end, w.EndAt())
	})

	t.Run("missing server", func(t *testing.T) {
		_, err := NewWindow("", vo.PlanBasic, start, end)
		assert.Error(t, err)
	})

	t.Run("invalid plan", func(t *testing.T) {
		_, err := NewWindow("srv-1", vo.Plan("gold"), start, end)
		assert.Error(t, err)
	})

	t.Run("end not after start", func(t *testing.T) {
		_, err := NewWindow("srv-1", vo.PlanBasic, start, start)
		assert.Error(t, err)
	})
}

func TestWindow_IsActiveAt(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	w, err := NewWindow("srv-1", vo.PlanPremium, start, end)
	require.NoError(t, err)

	assert.True(t, w.IsActiveAt(start))
	assert.True(t, w.IsActiveAt(start.Add(12*time.Hour)))
	assert.False(t, w.IsActiveAt(end))
	assert.False(t, w.IsActiveAt(start.Add(-time.Second)))
}

func TestPlan_ClampQuantity(t *testing.T) {
	assert.Equal(t, 1, vo.PlanBasic.ClampQuantity(-3))
	assert.Equal(t, 1, vo.PlanBasic.ClampQuantity(0))
	assert.Equal(t, 15, vo.PlanBasic.ClampQuantity(15))
	assert.Equal(t, 30, vo.PlanBasic.ClampQuantity(99))
	assert.Equal(t, 24, vo.PlanPremium.ClampQuantity(99))
}

func TestPlan_WindowSpan(t *testing.T) {
	assert.Equal(t, 72*time.Hour, vo.PlanBasic.WindowSpan(3))
	assert.Equal(t, 6*time.Hour, vo.PlanPremium.WindowSpan(6))
	assert.Equal(t, 30*24*time.Hour, vo.PlanBasic.WindowSpan(500))
}
