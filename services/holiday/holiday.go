// Package holiday surfaces public holidays from the Calendarific API, cached
// in Redis so repeated range checks do not hammer the provider.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"haven/config"
	"haven/models"
	"haven/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	apiBase  = "https://calendarific.com/api/v2/holidays"
	cacheTTL = 24 * time.Hour
)

// Cache holds serialized holiday years between API calls.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
}

func (c redisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Service fetches and caches public holidays for the configured country.
type Service struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
	apiKey     string
	country    string
}

// NewService builds a holiday service from config. The cache client may be
// nil, in which case every lookup hits the API.
func NewService(cache *redis.Client) *Service {
	s := &Service{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    apiBase,
		apiKey:     config.AppConfig.CalendarificAPIKey,
		country:    config.AppConfig.HolidayCountry,
	}
	if cache != nil {
		s.cache = redisCache{client: cache}
	}
	return s
}

// HolidaysInRange returns the public holidays falling inside the closed
// calendar range [start, end].
func (s *Service) HolidaysInRange(ctx context.Context, start, end time.Time) ([]models.Holiday, error) {
	var matched []models.Holiday
	for year := start.Year(); year <= end.Year(); year++ {
		holidays, err := s.holidaysForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, h := range holidays {
			day, err := time.Parse("2006-01-02", h.Date)
			if err != nil {
				continue
			}
			if !day.Before(start) && !day.After(end) {
				matched = append(matched, h)
			}
		}
	}
	return matched, nil
}

func (s *Service) holidaysForYear(ctx context.Context, year int) ([]models.Holiday, error) {
	cacheKey := fmt.Sprintf("holidays:%s:%d", s.country, year)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var holidays []models.Holiday
			if err := json.Unmarshal([]byte(cached), &holidays); err == nil {
				return holidays, nil
			}
		}
	}

	holidays, err := s.fetchYear(ctx, year)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(holidays); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), cacheTTL); err != nil {
				utils.GetLogger().Warn("Failed to cache holidays", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return holidays, nil
}

// calendarificResponse mirrors the slice of the API response we consume.
type calendarificResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
			Date struct {
				ISO string `json:"iso"`
			} `json:"date"`
		} `json:"holidays"`
	} `json:"response"`
}

func (s *Service) fetchYear(ctx context.Context, year int) ([]models.Holiday, error) {
	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("country", s.country)
	q.Set("year", fmt.Sprintf("%d", year))
	q.Set("type", "national")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("holiday API returned %d: %s", resp.StatusCode, body)
	}

	var parsed calendarificResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode holiday API response: %w", err)
	}

	holidays := make([]models.Holiday, 0, len(parsed.Response.Holidays))
	for _, h := range parsed.Response.Holidays {
		iso := h.Date.ISO
		if len(iso) > 10 {
			iso = iso[:10]
		}
		holidays = append(holidays, models.Holiday{Date: iso, Name: h.Name})
	}
	return holidays, nil
}
