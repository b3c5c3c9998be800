package import_holds

import "github.com/google/uuid"

// Feed настроенный фид OTA
type Feed struct {
	Source     string // уникальное имя канала, например "airbnb-deluxe"
	URL        string
	RoomTypeID *int64 // nil = фид блокирует все типы номеров
}

// Request модель запроса на импорт
type Request struct {
	Source string // пусто = все фиды
}

// Результаты импорта фида
const (
	ResultOK          = "ok"
	ResultFetchFailed = "fetch_failed"
	ResultParseFailed = "parse_failed"
	ResultApplyFailed = "apply_failed"
)

// FeedResult итог импорта одного фида
type FeedResult struct {
	Source    string
	Result    string
	Error     string
	Events    int
	Created   int
	Updated   int
	Unchanged int
	Retried   int // ранее неприменённые блокировки, примененные сейчас
	Conflicts int // блокировки, не поместившиеся в свободные номера
	Cleared   int // блокировки, пропавшие из фида
}

// Response модель ответа
type Response struct {
	RunID uuid.UUID
	Feeds []FeedResult
}
