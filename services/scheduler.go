package services

import (
	"context"

	"barberledger-backend/logger"

	cron "github.com/robfig/cron/v3"
)

// StartReengagementScheduler runs DispatchAll on the given cron spec
// (e.g. "0 9 * * *" for 9 AM daily). The caller stops the returned cron.
func StartReengagementScheduler(spec string, svc *ReengagementService, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		svc.DispatchAll(context.Background())
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("reengagement scheduler started", "spec", spec)
	return c, nil
}
