package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradecore/internal/domain"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to domain.OrderStatus }{
		{domain.StatusPending, domain.StatusProcessing},
		{domain.StatusPending, domain.StatusCancelled},
		{domain.StatusProcessing, domain.StatusCompleted},
		{domain.StatusProcessing, domain.StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to domain.OrderStatus }{
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusProcessing, domain.StatusPending},
		{domain.StatusCompleted, domain.StatusProcessing},
		{domain.StatusCompleted, domain.StatusCancelled},
		{domain.StatusCancelled, domain.StatusPending},
		{domain.StatusCancelled, domain.StatusCancelled},
	}
	for _, tc := range denied {
		assert.False(t, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, domain.Terminal(domain.StatusPending))
	assert.False(t, domain.Terminal(domain.StatusProcessing))
	assert.True(t, domain.Terminal(domain.StatusCompleted))
	assert.True(t, domain.Terminal(domain.StatusCancelled))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, domain.ValidStatus(domain.StatusPending))
	assert.False(t, domain.ValidStatus("shipped"))
	assert.False(t, domain.ValidStatus(""))
}
