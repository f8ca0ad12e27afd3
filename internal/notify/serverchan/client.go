// Package serverchan pushes booking events to a phone through the
// ServerChan (Server酱) gateway.
package serverchan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
)

const (
	defaultBaseURL = "https://sctapi.ftqq.com"
	defaultTimeout = 5 * time.Second
	pushTimeout    = 8 * time.Second
)

// Logger is the leveled printf logger.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// KeyProvider returns the current SendKey, or nil when pushes are off.
// Reading it per event lets an admin rotate the key without a restart.
type KeyProvider interface {
	NotifyKey(ctx context.Context) *string
}

// Client sends booking events to ServerChan. Delivery runs in a
// background goroutine and is throttled so a burst of bookings cannot
// hammer the gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	keys       KeyProvider
	limiter    *rate.Limiter
	logger     Logger
}

// NewClient creates a ServerChan client. baseURL may be empty for the
// public gateway.
func NewClient(baseURL string, keys KeyProvider, logger Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		keys:       keys,
		// One push per second with a small burst is well under the
		// gateway's free-tier quota.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:  logger,
	}
}

// Notify implements notify.Notifier.
func (c *Client) Notify(ctx context.Context, event notify.BookingEvent) {
	key := c.keys.NotifyKey(ctx)
	if key == nil || *key == "" {
		return
	}

	title, body := renderEvent(event)

	go func(sendKey string) {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		if err := c.limiter.Wait(pushCtx); err != nil {
			c.logger.Warn("serverchan: push throttled out: %v", err)
			return
		}
		if err := c.send(pushCtx, sendKey, title, body); err != nil {
			c.logger.Warn("serverchan: push failed: %v", err)
			return
		}
		c.logger.Info("serverchan: pushed %s for booking %s", event.Kind, event.Booking.ID)
	}(*key)
}

func (c *Client) send(ctx context.Context, sendKey, title, body string) error {
	form := url.Values{}
	form.Set("title", title)
	form.Set("desp", body)

	endpoint := fmt.Sprintf("%s/%s.send", c.baseURL, sendKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

// renderEvent builds the markdown message the operator receives.
func renderEvent(event notify.BookingEvent) (title, body string) {
	b := event.Booking

	switch event.Kind {
	case notify.EventBookingCancelled:
		title = "预约取消 Booking cancelled"
	default:
		title = "新预约 New booking"
	}

	station := event.StationName
	if station == "" {
		station = fmt.Sprintf("Station %d", b.StationID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (%s)\n\n", b.MemberName, b.MemberPhone)
	fmt.Fprintf(&sb, "- Date: %s\n", b.Date.Format(domain.DateFormat))
	fmt.Fprintf(&sb, "- Time: %s - %s\n", b.StartTime.String(), b.EndTime.String())
	fmt.Fprintf(&sb, "- Station: %s", station)
	if event.ModelName != "" {
		fmt.Fprintf(&sb, " (%s)", event.ModelName)
	}
	sb.WriteString("\n")
	if b.Notes != nil && *b.Notes != "" {
		fmt.Fprintf(&sb, "- Notes: %s\n", *b.Notes)
	}
	return title, sb.String()
}
