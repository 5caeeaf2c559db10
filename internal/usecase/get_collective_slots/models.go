package get_collective_slots

import "time"

// Request модель запроса на получение слотов, свободных у всех участников
type Request struct {
	ScheduleIDs   []int64   // ID расписаний участников, первое задаёт таймзону по умолчанию
	From          time.Time // Начало окна (включительно)
	To            time.Time // Конец окна (исключительно)
	EventLength   *int      // Длительность события в минутах (nil - значение по умолчанию)
	Cadence       int       // Шаг между стартами слотов в минутах (0 - равен длительности)
	MinimumNotice *int      // Минимальное время до начала слота в минутах (nil - значение по умолчанию)
	OffsetStart   int       // Дополнительный сдвиг каждого слота в минутах
	TimeZone      string    // Таймзона отображения (пусто - таймзона первого расписания)
}

// Response модель ответа со списком общих слотов
type Response struct {
	ScheduleIDs      []int64
	TimeZone         string
	EventLength      int
	Slots            []Slot
	Intervals        []Interval // Пересечение свободного времени участников
	CalendarDegraded bool       // true, если занятость хотя бы одного участника из календарей не учтена
}

// Slot модель временного слота
type Slot struct {
	Start time.Time
	End   time.Time
}

// Interval модель свободного интервала
type Interval struct {
	Start time.Time
	End   time.Time
}

// Defaults значения по умолчанию из конфигурации
type Defaults struct {
	EventLength   int
	MinimumNotice int
	MaxWindowDays int
}
