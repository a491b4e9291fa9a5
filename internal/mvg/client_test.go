// README: MVG client tests against a local fixture server.
package mvg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mvgbot/internal/transit"
)

func fixtureServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchLocations(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/location/queryWeb": `{"locations":[
			{"type":"station","id":"de:09162:2","name":"Marienplatz","place":"München"},
			{"type":"station","id":"de:09162:70","name":"Marienplatz Nord","place":"München"}
		]}`,
	})
	c := NewClient(srv.URL)

	got, err := c.SearchLocations(context.Background(), "marienplatz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d locations, want 2", len(got))
	}
	if got[0] != (transit.Location{ID: "de:09162:2", Name: "Marienplatz"}) {
		t.Errorf("first candidate = %+v", got[0])
	}
}

func TestSearchLocationsEmptyIsNotAnError(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/location/queryWeb": `{"locations":[]}`,
	})
	c := NewClient(srv.URL)

	got, err := c.SearchLocations(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("empty result must be a success: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestFindRoutes(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/routing": `{"connectionList":[{"connectionPartList":[
			{"from":{"name":"Marienplatz"},"to":{"name":"Garching"},
			 "departure":1767254700000,"arrival":1767256500000,
			 "product":"UBAHN","label":"U6"},
			{"from":{"name":"Garching"},"to":{"name":"Garching Campus"},
			 "departure":1767256500000,"arrival":1767257100000,
			 "product":"","label":""}
		]}]}`,
	})
	c := NewClient(srv.URL)

	plans, err := c.FindRoutes(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	if len(plans) != 1 || len(plans[0].Legs) != 2 {
		t.Fatalf("plans = %+v", plans)
	}
	leg := plans[0].Legs[0]
	if leg.Mode != "UBAHN" || leg.Label != "U6" || leg.FromName != "Marienplatz" {
		t.Errorf("leg = %+v", leg)
	}
	if !leg.Departure.Equal(time.UnixMilli(1767254700000)) {
		t.Errorf("departure = %v", leg.Departure)
	}
	if plans[0].Legs[1].Mode != "" {
		t.Errorf("walking leg must have empty mode: %+v", plans[0].Legs[1])
	}
}

func TestFindDepartures(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/departure/de:09162:2": `{"departures":[
			{"product":"UBAHN","label":"U3","destination":"Moosach","departureTime":1767254700000},
			{"product":"BUS","label":"132","destination":"Forstenried","departureTime":1767254760000}
		]}`,
	})
	c := NewClient(srv.URL)

	got, err := c.FindDepartures(context.Background(), "de:09162:2")
	if err != nil {
		t.Fatalf("departures: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d departures, want 2", len(got))
	}
	if got[1].Mode != "BUS" || got[1].Label != "132" || got[1].Destination != "Forstenried" {
		t.Errorf("departure = %+v", got[1])
	}
}

func TestServerErrorIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL)

	_, err := c.SearchLocations(context.Background(), "marienplatz")
	var perr *transit.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if perr.Op != "search locations" {
		t.Errorf("op = %q", perr.Op)
	}
}

func TestMalformedBodyIsProviderError(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/routing": `{"connectionList": not json`,
	})
	c := NewClient(srv.URL)

	_, err := c.FindRoutes(context.Background(), "a", "b")
	var perr *transit.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
}
