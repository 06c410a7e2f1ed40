package review

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"schema-engine/internal/common/errors"
	"schema-engine/internal/models"
)

// HTTPAdapter fetches aggregate ratings from a review platform API
// (judge.me-style review listing endpoint). One attempt per call.
type HTTPAdapter struct {
	baseURL  string
	apiKey   string
	platform string
	client   *http.Client
}

func NewHTTPAdapter(baseURL, apiKey, platform string, timeout time.Duration) *HTTPAdapter {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if platform == "" {
		platform = "judgeme"
	}
	return &HTTPAdapter{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		platform: platform,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// reviewsResponse is the wire format of the platform's review listing.
type reviewsResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	Reviews       []struct {
		Author string  `json:"reviewer_name"`
		Rating int     `json:"rating"`
		Title  string  `json:"title"`
		Body   string  `json:"body"`
		Date   string  `json:"created_at"`
		Score  float64 `json:"score,omitempty"`
	} `json:"reviews"`
}

func (a *HTTPAdapter) Fetch(ctx context.Context, productID, shopDomain string) (*models.ReviewData, error) {
	endpoint := fmt.Sprintf("%s/api/v1/reviews?%s", a.baseURL, url.Values{
		"product_id":  {productID},
		"shop_domain": {shopDomain},
		"platform":    {a.platform},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewReviewFetchFailedError(productID, err)
	}
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.NewReviewFetchFailedError(productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No reviews on file for this product.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewReviewFetchFailedError(productID, fmt.Errorf("review endpoint returned %d", resp.StatusCode))
	}

	var payload reviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewReviewFetchFailedError(productID, err)
	}

	if payload.TotalReviews == 0 {
		return nil, nil
	}

	data := &models.ReviewData{
		AverageRating: payload.AverageRating,
		TotalReviews:  payload.TotalReviews,
	}
	for _, r := range payload.Reviews {
		data.Reviews = append(data.Reviews, models.Review{
			Author: r.Author,
			Rating: r.Rating,
			Title:  r.Title,
			Body:   r.Body,
			Date:   r.Date,
		})
	}
	return data, nil
}
