package import_holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// UseCase use case для импорта блокировок из фидов OTA
type UseCase struct {
	feeds     []Feed
	client    FeedClient
	parser    FeedParser
	holdRepo  HoldRepository
	ledger    Ledger
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	feeds []Feed,
	client FeedClient,
	parser FeedParser,
	holdRepo HoldRepository,
	ledger Ledger,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		feeds:     feeds,
		client:    client,
		parser:    parser,
		holdRepo:  holdRepo,
		ledger:    ledger,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute импортирует фиды
// Ошибка одного фида не останавливает остальные и не меняет его блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	feeds := uc.feeds
	if req.Source != "" {
		feeds = nil
		for _, f := range uc.feeds {
			if f.Source == req.Source {
				feeds = append(feeds, f)
			}
		}
		if len(feeds) == 0 {
			uc.logger.Warn("ImportHolds: unknown source=%s", req.Source)
			return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, req.Source)
		}
	}

	resp := &Response{RunID: uuid.New(), Feeds: make([]FeedResult, 0, len(feeds))}
	uc.logger.Info("ImportHolds: run=%s feeds=%d", resp.RunID, len(feeds))

	for _, feed := range feeds {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("ImportHolds: run=%s interrupted: %v", resp.RunID, err)
			return resp, err
		}

		result := uc.importFeed(ctx, feed)
		uc.metrics.IncHoldImportRun(feed.Source, result.Result)
		resp.Feeds = append(resp.Feeds, result)
	}

	return resp, nil
}

// importFeed загружает и разбирает фид, затем применяет изменения одной транзакцией
func (uc *UseCase) importFeed(ctx context.Context, feed Feed) FeedResult {
	result := FeedResult{Source: feed.Source}

	body, err := uc.client.Fetch(ctx, feed.URL)
	if err != nil {
		uc.logger.Error("ImportHolds: source=%s fetch failed, skipping: %v", feed.Source, err)
		result.Result = ResultFetchFailed
		result.Error = err.Error()
		return result
	}

	events, err := uc.parser.Parse(body)
	if err != nil {
		uc.logger.Error("ImportHolds: source=%s parse failed, skipping: %v", feed.Source, err)
		result.Result = ResultParseFailed
		result.Error = err.Error()
		return result
	}
	result.Events = len(events)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Счетчики пересчитываются при каждой попытке транзакции
		attempt := FeedResult{Source: feed.Source, Events: len(events)}

		existing, err := uc.holdRepo.ListBySource(txCtx, feed.Source)
		if err != nil {
			return fmt.Errorf("%w: failed to list holds: %w", ErrInternal, err)
		}

		p := buildPlan(feed, events, existing)

		// Отмены на OTA освобождают места до применения новых блокировок
		for _, h := range p.clear {
			if err := uc.ledger.ClearExternalHold(txCtx, h.Source, h.ExternalID); err != nil {
				return err
			}
			attempt.Cleared++
		}

		for _, c := range p.apply {
			if c.kind == changeUnchanged {
				attempt.Unchanged++
				continue
			}

			err := uc.ledger.ApplyExternalHold(txCtx, c.hold)
			var conflict *domain.CapacityError
			switch {
			case errors.As(err, &conflict):
				attempt.Conflicts++
				uc.logger.Warn("ImportHolds: source=%s hold=%s overbooking at room_type=%d date=%s, will retry next run",
					feed.Source, c.hold.ExternalID, conflict.RoomTypeID, conflict.Date)
				continue
			case err != nil:
				return err
			}

			switch c.kind {
			case changeCreate:
				attempt.Created++
			case changeUpdate:
				attempt.Updated++
			case changeRetry:
				attempt.Retried++
			}
		}

		result = attempt
		return nil
	})
	if err != nil {
		uc.logger.Error("ImportHolds: source=%s apply failed, rolled back: %v", feed.Source, err)
		result.Result = ResultApplyFailed
		result.Error = err.Error()
		return result
	}

	result.Result = ResultOK
	uc.recordChanges(result)
	uc.logger.Info("ImportHolds: source=%s events=%d created=%d updated=%d unchanged=%d retried=%d conflicts=%d cleared=%d",
		feed.Source, result.Events, result.Created, result.Updated, result.Unchanged, result.Retried, result.Conflicts, result.Cleared)

	return result
}

func (uc *UseCase) recordChanges(r FeedResult) {
	uc.metrics.AddHoldChanges(r.Source, "created", r.Created)
	uc.metrics.AddHoldChanges(r.Source, "updated", r.Updated)
	uc.metrics.AddHoldChanges(r.Source, "unchanged", r.Unchanged)
	uc.metrics.AddHoldChanges(r.Source, "retried", r.Retried)
	uc.metrics.AddHoldChanges(r.Source, "conflict", r.Conflicts)
	uc.metrics.AddHoldChanges(r.Source, "cleared", r.Cleared)
}
