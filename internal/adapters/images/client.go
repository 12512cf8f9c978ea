// Package images talks to the external image-management service that owns hotel pictures.
package images

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_service/internal/adapters/observability"
	"hotel_service/internal/domain"
)

const (
	singleTimeout = 5 * time.Second
	bulkTimeout   = 10 * time.Second
	maxAttempts   = 4
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, errors.New("image service base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Purgeable drops empty URLs and the shared placeholder image.
func Purgeable(urls []string) (keep []string, skipped int) {
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || u == domain.DefaultHotelImage {
			skipped++
			continue
		}
		keep = append(keep, u)
	}
	return keep, skipped
}

func (c *Client) DeleteImage(ctx context.Context, imageURL string) (domain.PurgeResult, error) {
	keep, skipped := Purgeable([]string{imageURL})
	if len(keep) == 0 {
		return domain.PurgeResult{Skipped: skipped}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, singleTimeout)
	defer cancel()

	u := c.base + "/api/images/url?imageUrl=" + url.QueryEscape(keep[0])
	if err := c.do(ctx, "delete_image", http.MethodDelete, u, nil, nil); err != nil {
		return domain.PurgeResult{FailedCount: 1}, err
	}
	return domain.PurgeResult{SuccessCount: 1}, nil
}

func (c *Client) DeleteImages(ctx context.Context, urls []string) (domain.PurgeResult, error) {
	keep, skipped := Purgeable(urls)
	if len(keep) == 0 {
		return domain.PurgeResult{Skipped: skipped}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, bulkTimeout)
	defer cancel()

	body, err := json.Marshal(map[string][]string{"imageUrls": keep})
	if err != nil {
		return domain.PurgeResult{}, err
	}
	var out domain.PurgeResult
	if err := c.do(ctx, "delete_images_bulk", http.MethodDelete, c.base+"/api/files/bulk/images/hotels", body, &out); err != nil {
		return domain.PurgeResult{FailedCount: len(keep), Skipped: skipped}, err
	}
	out.Skipped = skipped
	return out, nil
}

// do sends the request with client-side rate limiting and retries, decoding a JSON body into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) do(ctx context.Context, endpoint, method, u string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rd)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-service/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("images", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("images", endpoint, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			defer resp.Body.Close()
			if out == nil || resp.StatusCode == http.StatusNoContent {
				_, _ = io.Copy(io.Discard, resp.Body)
				return nil
			}
			return json.NewDecoder(resp.Body).Decode(out)

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("image service %d", resp.StatusCode)
			log.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Int("attempt", i+1).Msg("image service retry")
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("image service bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}

// Noop stands in when no image service is configured; every URL is reported skipped.
type Noop struct{}

func (Noop) DeleteImage(_ context.Context, _ string) (domain.PurgeResult, error) {
	return domain.PurgeResult{Skipped: 1}, nil
}

func (Noop) DeleteImages(_ context.Context, urls []string) (domain.PurgeResult, error) {
	return domain.PurgeResult{Skipped: len(urls)}, nil
}
