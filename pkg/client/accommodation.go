package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

// Accommodation fetches a single listing by register number.
func (c *Client) Accommodation(ctx context.Context, regNumber string) (*domain.Accommodation, error) {
	var a domain.Accommodation
	if err := c.get(ctx, "/accomodations/"+url.PathEscape(regNumber), &a); err != nil {
		return nil, fmt.Errorf("client.Accommodation: %w", err)
	}
	return &a, nil
}

// UserAccommodations lists the accommodations published by a user.
func (c *Client) UserAccommodations(ctx context.Context, userID int) ([]domain.Accommodation, error) {
	var list []domain.Accommodation
	if err := c.get(ctx, "/users/"+strconv.Itoa(userID)+"/accomodations", &list); err != nil {
		return nil, fmt.Errorf("client.UserAccommodations: %w", err)
	}
	return list, nil
}

// SavedAccommodations lists the accommodations a user has saved.
func (c *Client) SavedAccommodations(ctx context.Context, userID int) ([]domain.Accommodation, error) {
	var list []domain.Accommodation
	if err := c.get(ctx, "/users/"+strconv.Itoa(userID)+"/accomodations/saved", &list); err != nil {
		return nil, fmt.Errorf("client.SavedAccommodations: %w", err)
	}
	return list, nil
}

// StarAverage returns the mean star rating of a listing.
func (c *Client) StarAverage(ctx context.Context, regNumber string) (float64, error) {
	var resp struct {
		Stars float64 `json:"stars"`
	}
	if err := c.get(ctx, "/accomodations/"+url.PathEscape(regNumber)+"/stars", &resp); err != nil {
		return 0, fmt.Errorf("client.StarAverage: %w", err)
	}
	return resp.Stars, nil
}

// CreateAccommodation publishes a new listing (final step of the upload wizard).
func (c *Client) CreateAccommodation(ctx context.Context, a domain.Accommodation) (*domain.Accommodation, error) {
	var created domain.Accommodation
	if err := c.post(ctx, "/accomodations", a, &created); err != nil {
		return nil, fmt.Errorf("client.CreateAccommodation: %w", err)
	}
	return &created, nil
}

// DeleteAccommodation removes a listing by register number.
func (c *Client) DeleteAccommodation(ctx context.Context, regNumber string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/accomodations/"+url.PathEscape(regNumber), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteAccommodation: %w", err)
	}
	return nil
}

// SearchCities returns the cities matching the given search word.
func (c *Client) SearchCities(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)

	var cities []string
	if err := c.get(ctx, "/accomodations/cities?"+params.Encode(), &cities); err != nil {
		return nil, fmt.Errorf("client.SearchCities: %w", err)
	}
	return cities, nil
}
