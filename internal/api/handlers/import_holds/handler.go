package import_holds

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	importHolds "github.com/m04kA/SMC-HotelService/internal/usecase/import_holds"
)

const msgUnknownFeed = "фид с таким источником не настроен"

// FeedResultResponse итог импорта одного фида
type FeedResultResponse struct {
	Source    string `json:"source"`
	Result    string `json:"result"`
	Error     string `json:"error,omitempty"`
	Events    int    `json:"events"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
	Retried   int    `json:"retried"`
	Conflicts int    `json:"conflicts"`
	Cleared   int    `json:"cleared"`
}

// ImportResponse HTTP response model
type ImportResponse struct {
	RunID string               `json:"runId"`
	Feeds []FeedResultResponse `json:"feeds"`
}

type Handler struct {
	useCase ImportHoldsUseCase
	logger  Logger
}

func NewHandler(useCase ImportHoldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/jobs/import-holds?source=airbnb-double
// Без source импортируются все фиды. Ошибка одного фида видна в его result
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	result, err := h.useCase.Execute(r.Context(), &importHolds.Request{Source: source})
	if err != nil {
		if errors.Is(err, importHolds.ErrUnknownFeed) {
			h.logger.Warn("POST /admin/jobs/import-holds - Unknown feed: source=%s", source)
			handlers.RespondNotFound(w, msgUnknownFeed)
			return
		}
		h.logger.Error("POST /admin/jobs/import-holds - Failed to import holds: source=%s, error=%v", source, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &ImportResponse{
		RunID: result.RunID.String(),
		Feeds: make([]FeedResultResponse, 0, len(result.Feeds)),
	}
	for _, f := range result.Feeds {
		resp.Feeds = append(resp.Feeds, FeedResultResponse(f))
	}

	h.logger.Info("POST /admin/jobs/import-holds - Import finished: run_id=%s, feeds=%d", resp.RunID, len(resp.Feeds))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
