package import_holds

import (
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/integrations/calendarfeed"
)

// changeKind действие над блокировкой
type changeKind int

const (
	changeCreate changeKind = iota
	changeUpdate
	changeRetry
	changeUnchanged
)

// change применение события фида
type change struct {
	kind changeKind
	hold *domain.ExternalHold
}

// plan изменения для приведения блокировок источника к фиду
type plan struct {
	apply []change
	clear []*domain.ExternalHold
}

// buildPlan сопоставляет события с сохраненными блокировками по (source, externalID)
// Повторяющийся UID: используется последнее событие
func buildPlan(feed Feed, events []calendarfeed.Event, existing []*domain.ExternalHold) plan {
	stored := make(map[string]*domain.ExternalHold, len(existing))
	for _, h := range existing {
		stored[h.ExternalID] = h
	}

	latest := make(map[string]calendarfeed.Event, len(events))
	order := make([]string, 0, len(events))
	for _, ev := range events {
		if _, seen := latest[ev.UID]; !seen {
			order = append(order, ev.UID)
		}
		latest[ev.UID] = ev
	}

	var p plan
	for _, uid := range order {
		ev := latest[uid]
		hold := &domain.ExternalHold{
			Source:     feed.Source,
			ExternalID: uid,
			RoomTypeID: feed.RoomTypeID,
			Start:      ev.Start,
			End:        ev.End,
			Note:       ev.Summary,
		}

		prev, ok := stored[uid]
		switch {
		case !ok:
			p.apply = append(p.apply, change{kind: changeCreate, hold: hold})
		case !prev.Range().Equal(hold.Range()) || !prev.SameScope(hold):
			p.apply = append(p.apply, change{kind: changeUpdate, hold: hold})
		case !prev.Applied:
			p.apply = append(p.apply, change{kind: changeRetry, hold: hold})
		default:
			p.apply = append(p.apply, change{kind: changeUnchanged, hold: prev})
		}
	}

	for _, h := range existing {
		if _, ok := latest[h.ExternalID]; !ok {
			p.clear = append(p.clear, h)
		}
	}

	return p
}
