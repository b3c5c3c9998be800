package domain

import (
	"fmt"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// DateRange полуоткрытый интервал дат [Start, End)
type DateRange struct {
	Start types.Date
	End   types.Date
}

// NewDateRange создает диапазон, End должен быть строго позже Start
func NewDateRange(start, end types.Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return DateRange{}, fmt.Errorf("%w: %s..%s", ErrInvalidDateRange, start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// Nights количество ночей в диапазоне
func (r DateRange) Nights() int {
	return r.Start.DaysUntil(r.End)
}

// Dates все даты диапазона, End не включается
func (r DateRange) Dates() []types.Date {
	n := r.Nights()
	if n <= 0 {
		return nil
	}
	dates := make([]types.Date, 0, n)
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// Contains true, если дата попадает в [Start, End)
func (r DateRange) Contains(d types.Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Overlaps true, если диапазоны пересекаются хотя бы одной ночью
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Equal сравнивает границы диапазонов
func (r DateRange) Equal(other DateRange) bool {
	return r.Start == other.Start && r.End == other.End
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
