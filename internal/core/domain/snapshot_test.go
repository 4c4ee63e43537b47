package domain_test

import (
	"testing"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestERPStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    domain.ERPStatus
		to      domain.ERPStatus
		allowed bool
	}{
		{domain.ERPPending, domain.ERPConfirmed, true},
		{domain.ERPPending, domain.ERPFailed, true},
		{domain.ERPPending, domain.ERPTimeout, true},
		{domain.ERPPending, domain.ERPPending, false},
		{domain.ERPFailed, domain.ERPConfirmed, true},
		{domain.ERPFailed, domain.ERPFailed, true},
		{domain.ERPFailed, domain.ERPTimeout, false},
		{domain.ERPTimeout, domain.ERPConfirmed, true},
		{domain.ERPTimeout, domain.ERPFailed, true},
		{domain.ERPConfirmed, domain.ERPFailed, false},
		{domain.ERPConfirmed, domain.ERPPending, false},
		{domain.ERPConfirmed, domain.ERPConfirmed, false},
	}

	for _, tc := range tests {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestERPStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.ERPConfirmed.IsTerminal())
	assert.False(t, domain.ERPPending.IsTerminal())
	assert.False(t, domain.ERPFailed.IsTerminal())
	assert.False(t, domain.ERPTimeout.IsTerminal())
}
