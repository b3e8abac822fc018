package query

import (
	"math"

	"go-event-hub/internal/model"
)

// OrganizerStats 主辦方儀表板：活動數、總報名、營收與平均報名數（四捨五入）
func OrganizerStats(events []*model.Event) model.DashboardStats {
	stats := model.DashboardStats{TotalEvents: len(events)}
	for _, e := range events {
		stats.TotalRegistrations += e.Registered
		stats.Revenue += float64(e.Registered) * e.Price
	}
	if len(events) > 0 {
		avg := float64(stats.TotalRegistrations) / float64(len(events))
		stats.AvgRegistrations = int(math.Floor(avg + 0.5))
	}
	return stats
}
