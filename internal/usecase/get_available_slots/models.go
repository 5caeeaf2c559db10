package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ScheduleID    int64     // ID расписания
	From          time.Time // Начало окна (включительно)
	To            time.Time // Конец окна (исключительно)
	EventLength   *int      // Длительность события в минутах (nil - значение по умолчанию)
	Cadence       int       // Шаг между стартами слотов в минутах (0 - равен длительности)
	MinimumNotice *int      // Минимальное время до начала слота в минутах (nil - значение по умолчанию)
	OffsetStart   int       // Дополнительный сдвиг каждого слота в минутах
	TimeZone      string    // Таймзона отображения (пусто - таймзона расписания)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ScheduleID       int64
	TimeZone         string     // Таймзона, в которой выражены слоты
	EventLength      int        // Фактическая длительность события в минутах
	Slots            []Slot     // Доступные слоты по возрастанию
	Intervals        []Interval // Свободные интервалы после вычета занятости
	CalendarDegraded bool       // true, если занятость из внешних календарей не учтена
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
