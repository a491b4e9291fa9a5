// README: Thin typed client for the MVG Fahrinfo REST API.
package mvg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mvgbot/internal/transit"
)

// Client implements transit.Provider against the MVG Fahrinfo API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type locationResponse struct {
	Locations []struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Name  string `json:"name"`
		Place string `json:"place"`
	} `json:"locations"`
}

type routingResponse struct {
	ConnectionList []struct {
		ConnectionPartList []struct {
			From struct {
				Name string `json:"name"`
			} `json:"from"`
			To struct {
				Name string `json:"name"`
			} `json:"to"`
			Departure int64  `json:"departure"`
			Arrival   int64  `json:"arrival"`
			Product   string `json:"product"`
			Label     string `json:"label"`
		} `json:"connectionPartList"`
	} `json:"connectionList"`
}

type departureResponse struct {
	Departures []struct {
		Product       string `json:"product"`
		Label         string `json:"label"`
		Destination   string `json:"destination"`
		DepartureTime int64  `json:"departureTime"`
	} `json:"departures"`
}

func (c *Client) SearchLocations(ctx context.Context, query string) ([]transit.Location, error) {
	var resp locationResponse
	if err := c.get(ctx, "/location/queryWeb?q="+url.QueryEscape(query), &resp); err != nil {
		return nil, &transit.ProviderError{Op: "search locations", Err: err}
	}
	locations := make([]transit.Location, 0, len(resp.Locations))
	for _, l := range resp.Locations {
		locations = append(locations, transit.Location{ID: l.ID, Name: l.Name})
	}
	return locations, nil
}

func (c *Client) FindRoutes(ctx context.Context, startID, endID string) ([]transit.RoutePlan, error) {
	path := fmt.Sprintf("/routing?fromStation=%s&toStation=%s",
		url.QueryEscape(startID), url.QueryEscape(endID))
	var resp routingResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, &transit.ProviderError{Op: "find routes", Err: err}
	}
	plans := make([]transit.RoutePlan, 0, len(resp.ConnectionList))
	for _, conn := range resp.ConnectionList {
		var plan transit.RoutePlan
		for _, part := range conn.ConnectionPartList {
			plan.Legs = append(plan.Legs, transit.Leg{
				Mode:      part.Product,
				Label:     part.Label,
				Departure: time.UnixMilli(part.Departure),
				Arrival:   time.UnixMilli(part.Arrival),
				FromName:  part.From.Name,
				ToName:    part.To.Name,
			})
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (c *Client) FindDepartures(ctx context.Context, stationID string) ([]transit.Departure, error) {
	var resp departureResponse
	if err := c.get(ctx, "/departure/"+url.PathEscape(stationID)+"?footway=0", &resp); err != nil {
		return nil, &transit.ProviderError{Op: "find departures", Err: err}
	}
	departures := make([]transit.Departure, 0, len(resp.Departures))
	for _, d := range resp.Departures {
		departures = append(departures, transit.Departure{
			Mode:        d.Product,
			Label:       d.Label,
			Departure:   time.UnixMilli(d.DepartureTime),
			Destination: d.Destination,
		})
	}
	return departures, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
