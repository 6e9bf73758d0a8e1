package services

import (
	"testing"

	"barberledger-backend/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartReengagementScheduler(t *testing.T) {
	svc, _ := newTestReengagement(t, newFakeSender(), at(2024, 6, 30, 12, 0))

	_, err := StartReengagementScheduler("not a cron", svc, logger.Nop())
	assert.Error(t, err)

	c, err := StartReengagementScheduler("0 9 * * *", svc, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
