package availability

import "time"

// DateRange диапазон календарных дат [From, To] включительно
type DateRange struct {
	From time.Time
	To   time.Time
}

// Day диапазон из одного дня
func Day(date time.Time) DateRange {
	return DateRange{From: date, To: date}
}

// Days количество календарных дней в диапазоне
func (r DateRange) Days(loc *time.Location) int {
	from := utcDate(r.From.In(loc))
	to := utcDate(r.To.In(loc))
	return int(to.Sub(from).Hours()/24) + 1
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
