package history_service

import "github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"

// ComputeStats aggregates over the full canonical list, never a filtered view.
func ComputeStats(records []domain.ConsultationRecord) domain.HistoryStats {
	stats := domain.HistoryStats{Total: len(records)}

	ratingSum, rated := 0, 0
	for _, record := range records {
		switch record.Status {
		case domain.ConsultationStatusCompleted:
			stats.CompletedCount++
			stats.TotalSpent += record.Cost
		case domain.ConsultationStatusCancelled:
			stats.CancelledCount++
		}

		if rating := record.Rating(); rating > 0 {
			ratingSum += rating
			rated++
		}
	}

	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}

	return stats
}
