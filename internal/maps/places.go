package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Place represents a simplified location result.
type Place struct {
	Name    string
	Address string
	PlaceID string
}

// PlacesService normalizes free-text destinations ("SF", "the big apple")
// into canonical city names via the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// ResolveDestination looks up the canonical place for a destination string.
// Callers treat failures as "keep the raw text": normalization refines search
// queries but never blocks them.
func (s *PlacesService) ResolveDestination(ctx context.Context, destination string) (Place, error) {
	r := &maps.TextSearchRequest{
		Query: destination,
		Type:  maps.PlaceType("locality"),
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return Place{}, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return Place{}, fmt.Errorf("no place found for %q", destination)
	}

	top := resp.Results[0]
	return Place{
		Name:    top.Name,
		Address: top.FormattedAddress,
		PlaceID: top.PlaceID,
	}, nil
}
