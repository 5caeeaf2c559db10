package calendarservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Client клиент для работы с CalendarService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CalendarService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusyIntervals получает занятость владельца во внешних календарях за окно [from, to)
// Если у владельца не подключен календарь (404), возвращает пустой список
func (c *Client) GetBusyIntervals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.BusyInterval, error) {
	query := url.Values{}
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))
	reqURL := fmt.Sprintf("%s/internal/owners/%d/busy?%s", c.baseURL, ownerID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return []domain.BusyInterval{}, nil
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid busy request for owner %d", ErrInvalidResponse, ownerID)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var busy BusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&busy); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return toBusyIntervals(busy.Busy), nil
}

// GetBusyIntervalsWithGracefulDegradation получает занятость с graceful degradation
// При недоступности CalendarService возвращает ErrServiceDegraded,
// решение о том, можно ли продолжать без внешней занятости, принимает вызывающий
func (c *Client) GetBusyIntervalsWithGracefulDegradation(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.BusyInterval, error) {
	busy, err := c.GetBusyIntervals(ctx, ownerID, from, to)
	if err != nil {
		// Отмена запроса вызывающим - не деградация сервиса
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("CalendarService unavailable, applying graceful degradation for owner_id=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: owner_id=%d, error=%v", ErrServiceDegraded, ownerID, err)
	}

	c.log.Info("Fetched %d calendar busy intervals for owner_id=%d", len(busy), ownerID)
	return busy, nil
}

// toBusyIntervals отбрасывает пустые и перевёрнутые интервалы
func toBusyIntervals(periods []BusyPeriod) []domain.BusyInterval {
	result := make([]domain.BusyInterval, 0, len(periods))
	for _, p := range periods {
		iv := domain.TimeInterval{Start: p.Start, End: p.End}
		if !iv.IsValid() {
			continue
		}
		result = append(result, domain.BusyInterval{TimeInterval: iv, Source: domain.BusySourceCalendar})
	}
	return result
}
