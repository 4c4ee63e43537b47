package domain_test

import (
	"testing"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestERPTokenIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.False(t, (&domain.ERPToken{}).IsExpired())
	assert.False(t, (&domain.ERPToken{ExpiresAt: &future}).IsExpired())
	assert.True(t, (&domain.ERPToken{ExpiresAt: &past}).IsExpired())
}

func TestERPTokenIsRevoked(t *testing.T) {
	now := time.Now()

	assert.False(t, (&domain.ERPToken{}).IsRevoked())
	assert.True(t, (&domain.ERPToken{RevokedAt: &now}).IsRevoked())
}
