package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"vibeshare/internal/middleware"
	"vibeshare/internal/models"
	"vibeshare/internal/observability"
)

// AdTTL is how long a fetched ad list is served before the upstream feed is
// asked again.
const AdTTL = 5 * time.Minute

// AdService proxies the third-party advertising feed with a short-lived
// in-memory cache, so at most one upstream fetch happens per window
// regardless of traffic.
type AdService struct {
	url    string
	client *http.Client
	now    func() time.Time

	mu        sync.Mutex
	ads       []models.Ad
	fetchedAt time.Time
}

// NewAdService returns a new AdService fetching from url.
func NewAdService(url string) *AdService {
	return &AdService{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		now:    time.Now,
	}
}

// Ads returns the current ad list. Within the cache window the stored copy
// is returned without touching the network. When a refresh fails but a
// previous copy exists, the stale copy is served instead of an error.
func (s *AdService) Ads(ctx context.Context) ([]models.Ad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ads != nil && s.now().Sub(s.fetchedAt) < AdTTL {
		return s.ads, nil
	}

	ads, err := s.fetch(ctx)
	if err != nil {
		middleware.AdFetches.WithLabelValues("error").Inc()
		if s.ads != nil {
			middleware.Logger.WarnContext(ctx, "ad feed refresh failed, serving stale ads",
				"error", err.Error())
			return s.ads, nil
		}
		return nil, models.NewUpstreamError("ad feed", err)
	}

	middleware.AdFetches.WithLabelValues("ok").Inc()
	s.ads = ads
	s.fetchedAt = s.now()
	return s.ads, nil
}

func (s *AdService) fetch(ctx context.Context) ([]models.Ad, error) {
	ctx, span := observability.TraceUpstreamCall(ctx, "ad-feed", "fetch")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("ad feed returned status %d", resp.StatusCode)
		span.RecordError(err)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var ads []models.Ad
	if err := json.Unmarshal(body, &ads); err != nil {
		return nil, fmt.Errorf("ad feed returned malformed JSON: %w", err)
	}
	return ads, nil
}
