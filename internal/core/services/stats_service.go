package services

import (
	"context"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

type StatsService struct {
	records domain.RecordRepository
}

func NewStatsService(records domain.RecordRepository) *StatsService {
	return &StatsService{records: records}
}

type StatsReport struct {
	domain.Statistics
	// Empty drives the placeholder shown before anything was completed.
	Empty bool `json:"empty"`
}

// GetStatistics recomputes every figure from the full completion history.
func (s *StatsService) GetStatistics(ctx context.Context) (*StatsReport, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("list completion records", err)
	}

	ledger := domain.NewLedger(records)

	return &StatsReport{
		Statistics: domain.CalculateStatistics(ledger.Records()),
		Empty:      ledger.Len() == 0,
	}, nil
}
