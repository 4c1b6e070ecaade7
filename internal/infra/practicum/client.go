// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// Client fetches homework statuses from the Practicum API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
	now        func() time.Time
}

func NewClient(endpoint, token string, httpClient *http.Client, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// HomeworkStatuses requests every status change since fromDate (Unix seconds;
// zero or negative means now) and returns the decoded JSON body as is.
//
// HTTP 500/599 and transport failures are connectivity faults, HTTP 408 and
// client deadlines are timeout faults. An undecodable 200 body or any other
// status code is logged and yields an empty mapping. A cancelled ctx error is
// returned as is.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	if fromDate <= 0 {
		fromDate = c.now().Unix()
	}
	logCtx := c.logger.WithField("from_date", fromDate)

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid practicum endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build practicum request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.FetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		if errors.Is(err, context.Canceled) {
			// Shutdown, not an outage.
			logCtx.Debug("Practicum request cancelled")
			return nil, err
		}
		if isTimeout(err) {
			logCtx.WithError(err).Error("Practicum request timed out")
			return nil, homework.NewFault(homework.FaultTimeout, err, "Превышено время ожидания ответа от эндпоинта %s", c.endpoint)
		}
		logCtx.WithError(err).Error("Practicum request failed")
		return nil, homework.NewFault(homework.FaultConnectivity, err, "Эндпоинт %s недоступен", c.endpoint)
	}
	defer resp.Body.Close()
	metrics.FetchDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	logCtx = logCtx.WithField("status_code", resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusOK:
		var body any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			logCtx.WithError(err).Error("Could not decode practicum response body")
			return map[string]any{}, nil
		}
		logCtx.Debug("Practicum response received")
		return body, nil
	case http.StatusInternalServerError, 599:
		logCtx.Error("Practicum API returned a server error")
		return nil, homework.NewFault(homework.FaultConnectivity, nil,
			"Эндпоинт %s недоступен. Код ответа API: %d", c.endpoint, resp.StatusCode)
	case http.StatusRequestTimeout:
		logCtx.Error("Practicum API returned 408")
		return nil, homework.NewFault(homework.FaultTimeout, nil,
			"Превышено время ожидания ответа от эндпоинта %s. Код ответа API: %d", c.endpoint, resp.StatusCode)
	default:
		logCtx.Errorf("Unexpected response from %s", c.endpoint)
		return map[string]any{}, nil
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
