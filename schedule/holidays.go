package schedule

import "context"

// StoreHolidays adapts a HolidayStore into a HolidayCalendar, reading the
// table fresh on each lookup so runtime edits take effect immediately.
type StoreHolidays struct {
	Store HolidayStore
}

func (s *StoreHolidays) IsHoliday(date Date) bool {
	_, ok := s.HolidayName(date)
	return ok
}

func (s *StoreHolidays) HolidayName(date Date) (string, bool) {
	holidays, err := s.Store.ListHolidays(context.Background())
	if err != nil {
		return "", false
	}
	for _, h := range holidays {
		if h.Date.Equal(date) {
			return h.Name, true
		}
	}
	return "", false
}

// FixedHolidays is a map-backed calendar for tests and fixtures.
type FixedHolidays map[string]string // "2006-01-02" -> name

func (f FixedHolidays) IsHoliday(date Date) bool {
	_, ok := f[date.String()]
	return ok
}

func (f FixedHolidays) HolidayName(date Date) (string, bool) {
	name, ok := f[date.String()]
	return name, ok
}
