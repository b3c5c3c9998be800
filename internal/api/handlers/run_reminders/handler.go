package run_reminders

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	sendReminders "github.com/m04kA/SMC-HotelService/internal/usecase/send_reminders"
)

// CategoryAll запускает все категории по порядку
const CategoryAll = "all"

const msgUnknownCategory = "неизвестная категория напоминаний"

type Handler struct {
	useCase SendRemindersUseCase
	logger  Logger
}

func NewHandler(useCase SendRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/jobs/reminders/{category}
// Повторный запуск в тот же день не отправляет напоминания второй раз
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	if category == CategoryAll {
		records, err := h.useCase.ExecuteAll(r.Context(), domain.TriggerManual)
		if err != nil {
			h.logger.Error("POST /admin/jobs/reminders/all - Failed to run reminders: %v", err)
			handlers.RespondInternalError(w)
			return
		}

		resp := &RunsResponse{Runs: make([]RunResponse, 0, len(records))}
		for _, rec := range records {
			resp.Runs = append(resp.Runs, fromRecord(rec))
		}
		h.logger.Info("POST /admin/jobs/reminders/all - Reminders finished: categories=%d", len(records))
		handlers.RespondJSON(w, http.StatusOK, resp)
		return
	}

	record, err := h.useCase.Execute(r.Context(), &sendReminders.Request{
		Category: category,
		Trigger:  domain.TriggerManual,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownReminderCategory) || errors.Is(err, sendReminders.ErrInvalidInput) {
			h.logger.Warn("POST /admin/jobs/reminders/{category} - Unknown category: category=%s", category)
			handlers.RespondNotFound(w, msgUnknownCategory)
			return
		}
		h.logger.Error("POST /admin/jobs/reminders/{category} - Failed to run reminders: category=%s, error=%v", category, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/jobs/reminders/{category} - Reminders finished: category=%s, notified=%d, skipped=%d, failed=%d",
		category, len(record.Notified), len(record.Skipped), len(record.Failed))
	handlers.RespondJSON(w, http.StatusOK, fromRecord(record))
}
