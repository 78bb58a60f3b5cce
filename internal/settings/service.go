package settings

import (
	"context"

	"school-admin-db/internal/config"
	"school-admin-db/internal/db"
	"school-admin-db/internal/logger"

	"github.com/rs/zerolog"
)

const (
	KeyLateThreshold = "late_threshold"
	KeySMSEnabled    = "sms_enabled"
)

// Service is a thin read-through over the settings table. Values are
// read per request so an operator's change applies to the next upload
// without a restart.
type Service struct {
	repo     db.Repository
	defaults map[string]string
	log      zerolog.Logger
}

func NewService(repo db.Repository, cfg *config.Config) *Service {
	return &Service{
		repo: repo,
		defaults: map[string]string{
			KeyLateThreshold: cfg.Attendance.LateThreshold,
		},
		log: logger.Get(),
	}
}

func (s *Service) Get(ctx context.Context, key string) string {
	value, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		return s.defaults[key]
	}
	return value
}

func (s *Service) Set(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

func (s *Service) LateThreshold(ctx context.Context) string {
	return s.Get(ctx, KeyLateThreshold)
}

func (s *Service) SMSEnabled(ctx context.Context) bool {
	return s.Get(ctx, KeySMSEnabled) == "true"
}
