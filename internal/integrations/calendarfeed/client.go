package calendarfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// MaxBodyBytes предельный размер фида
const MaxBodyBytes = 5 << 20

// Client клиент для загрузки iCal фидов OTA
type Client struct {
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(timeout time.Duration, log Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Fetch загружает тело фида
// Любая ошибка оборачивает domain.ErrFeedFetch
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", domain.ErrFeedFetch, err)
	}

	req.Header.Set("Accept", "text/calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", domain.ErrFeedFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrFeedFetch, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read body: %v", domain.ErrFeedFetch, err)
	}
	if len(body) > MaxBodyBytes {
		return "", fmt.Errorf("%w: %w: more than %d bytes", domain.ErrFeedFetch, ErrTooLarge, MaxBodyBytes)
	}

	c.log.Info("Fetch: downloaded feed url=%s bytes=%d", url, len(body))
	return string(body), nil
}
