package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ScraperService fetches internship postings from the RapidAPI
// internships endpoint. It only performs transport and tolerant field
// mapping; filtering and persistence belong to the ingest pipeline.
type ScraperService interface {
	FetchInternships(ctx context.Context, query string, limit int) ([]RawPosting, error)
}

type rapidAPIScraper struct {
	httpClient *http.Client
	apiKey     string
	apiHost    string
	baseURL    string
}

func NewRapidAPIScraper(apiKey, apiHost string) ScraperService {
	return &rapidAPIScraper{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		apiHost:    apiHost,
		baseURL:    fmt.Sprintf("https://%s", apiHost),
	}
}

// FetchInternships implements ScraperService.
func (s *rapidAPIScraper) FetchInternships(ctx context.Context, query string, limit int) ([]RawPosting, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("RAPID_API_KEY not configured")
	}
	if limit > 50 {
		limit = 50
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("x-rapidapi-key", s.apiKey)
	req.Header.Set("x-rapidapi-host", s.apiHost)

	q := url.Values{}
	q.Set("keyword", query)
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rapidapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rapidapi request failed: status %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse rapidapi response: %w", err)
	}

	return mapPostings(extractItemList(payload)), nil
}

// extractItemList finds the posting array under whichever key this
// API revision uses.
func extractItemList(payload map[string]interface{}) []interface{} {
	for _, key := range []string{"jobs", "results", "data"} {
		if list, ok := payload[key].([]interface{}); ok {
			return list
		}
	}
	return nil
}

func mapPostings(items []interface{}) []RawPosting {
	postings := make([]RawPosting, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		posting := RawPosting{
			Title:       firstString(item, "title", "job_title"),
			Company:     firstString(item, "company", "company_name"),
			Location:    firstString(item, "location", "city"),
			Description: firstString(item, "description", "summary"),
			URL:         firstString(item, "url", "link"),
			Country:     firstString(item, "country", "country_name"),
			Skills:      stringList(item["skills"]),
			PostedDate:  parsePostedDate(firstString(item, "posted_date", "date")),
		}

		postings = append(postings, posting)
	}
	return postings
}

func firstString(item map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := item[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func stringList(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		var out []string
		for _, entry := range v {
			if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func parsePostedDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
