package run_reminders

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// RunResponse итог запуска одной категории
type RunResponse struct {
	RunID      string    `json:"runId"`
	Category   string    `json:"category"`
	Trigger    string    `json:"trigger"`
	RunDate    string    `json:"runDate"`
	Notified   []int64   `json:"notified"`
	Skipped    []int64   `json:"skipped"`
	Failed     []int64   `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// RunsResponse итог запуска всех категорий
type RunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

func fromRecord(r *domain.ReminderRunRecord) RunResponse {
	return RunResponse{
		RunID:      r.RunID.String(),
		Category:   string(r.Category),
		Trigger:    string(r.Trigger),
		RunDate:    r.RunDate.String(),
		Notified:   nonNil(r.Notified),
		Skipped:    nonNil(r.Skipped),
		Failed:     nonNil(r.Failed),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
