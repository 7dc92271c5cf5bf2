package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"statuspage/app/internal/models"
)

// DefaultTimeout is the hard per-probe deadline. A probe that hasn't
// finished by then is canceled and reported as a transport failure.
const DefaultTimeout = 10 * time.Second

const (
	defaultUserAgent = "statuspage-monitor/1.0"

	// Bodies are only sniffed for challenge signatures; a prefix is
	// plenty and keeps large pages off the heap.
	maxBodyBytes = 64 << 10
)

// Executor performs HTTP probes against monitor targets.
type Executor struct {
	timeout   time.Duration
	userAgent string
	follow    *http.Client
	noFollow  *http.Client
}

// NewExecutor creates an executor. Zero timeout means DefaultTimeout;
// empty userAgent means the default.
func NewExecutor(timeout time.Duration, userAgent string) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Executor{
		timeout:   timeout,
		userAgent: userAgent,
		follow:    &http.Client{},
		noFollow: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Execute probes one monitor target and returns the outcome. Transport
// failures, including the timeout firing, are reported in the outcome's
// Err field and never as a Go error: a failed probe classifies as down,
// it does not abort the pass.
func (e *Executor) Execute(ctx context.Context, m models.MonitorConfig) models.ProbeOutcome {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	method := m.Method
	if method == "" {
		method = http.MethodGet
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, m.URL, nil)
	if err != nil {
		return models.ProbeOutcome{ResponseTime: elapsedMs(start), Err: err.Error()}
	}
	req.Header.Set("User-Agent", e.userAgent)

	client := e.noFollow
	if m.FollowRedirect {
		client = e.follow
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.ProbeOutcome{ResponseTime: elapsedMs(start), Err: err.Error()}
	}
	defer resp.Body.Close()

	out := models.ProbeOutcome{
		Success:      true,
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsedMs(start),
		ContentType:  resp.Header.Get("Content-Type"),
	}

	// Challenge sniffing only makes sense for text payloads; reading
	// binary bodies would risk misclassification and wasted transfer.
	if isTextContent(out.ContentType) {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err == nil {
			out.Body = string(body)
		}
	}

	return out
}

func isTextContent(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "text/plain")
}

func elapsedMs(start time.Time) int {
	return int(time.Since(start).Milliseconds())
}
