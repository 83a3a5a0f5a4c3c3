package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/models"
)

// historyLimit is how many enrollments the history screen lists.
const historyLimit = 20

type historyService struct {
	journal store.Journal

	logger *logger.Logger
}

func NewHistoryService(journal store.Journal, log *logger.Logger) HistoryService {
	return &historyService{
		journal: journal,
		logger:  log.WithPhase(config.ModeHistory),
	}
}

func (s *historyService) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	items, err := s.journal.Enrollments(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	s.logger.Debug().Int("enrollments", len(items)).Msg("journal read")
	return items, nil
}
