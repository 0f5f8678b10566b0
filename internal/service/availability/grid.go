package availability

import "time"

// startOfDay локальная полночь календарного дня t в поясе loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// alignUp округляет t вверх до ближайшей точки сетки с шагом step,
// отсчитываемой от локальной полуночи
func alignUp(t time.Time, step time.Duration, loc *time.Location) time.Time {
	offset := t.Sub(startOfDay(t, loc))
	rem := offset % step
	if rem == 0 {
		return t
	}
	return t.Add(step - rem)
}
