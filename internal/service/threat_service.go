package service

import (
	"context"
	"time"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"

	"go.uber.org/zap"
)

// ThreatService records simulated detected threats and their bulk removal.
type ThreatService interface {
	TrackThreats(ctx context.Context, req *dto.TrackThreatsRequest) error
	RemoveThreats(ctx context.Context, req *dto.RemoveThreatsRequest) error
}

type threatService struct {
	threats   domain.ThreatRepository
	txManager domain.TransactionManager
}

// NewThreatService creates a new ThreatService instance.
func NewThreatService(threats domain.ThreatRepository, txManager domain.TransactionManager) ThreatService {
	return &threatService{
		threats:   threats,
		txManager: txManager,
	}
}

// TrackThreats inserts the whole batch inside one transaction: a mid-batch
// failure leaves no rows behind instead of a prefix of the threat list.
func (s *threatService) TrackThreats(ctx context.Context, req *dto.TrackThreatsRequest) error {
	threats := make([]domain.Threat, 0, len(req.Threats))
	for _, t := range req.Threats {
		threats = append(threats, domain.Threat{
			Name:     t.Name,
			Type:     t.Type,
			Severity: t.Severity,
		})
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.threats.CreateThreats(txCtx, req.SessionID, threats)
	})
	if err != nil {
		return domain.NewEventPersistenceError(err)
	}

	logger.Get().Info("Tracked threat batch",
		zap.String("session_id", req.SessionID),
		zap.Int("count", len(threats)),
	)
	return nil
}

// RemoveThreats marks every unremoved threat for the session as removed.
// Running it again with nothing left to remove is a no-op success.
func (s *threatService) RemoveThreats(ctx context.Context, req *dto.RemoveThreatsRequest) error {
	affected, err := s.threats.MarkRemoved(ctx, req.SessionID, time.Now().UTC())
	if err != nil {
		return domain.NewEventPersistenceError(err)
	}

	logger.Get().Info("Removed threats",
		zap.String("session_id", req.SessionID),
		zap.Int64("rows", affected),
	)
	return nil
}
