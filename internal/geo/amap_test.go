package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

var _ Provider = (*AMapClient)(nil)

func newTestClient(t *testing.T, handler http.HandlerFunc) *AMapClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewAMapClientWithConfig(AMapConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.minInterval = 0
	return client
}

func TestNewAMapClientRequiresKey(t *testing.T) {
	if _, err := NewAMapClient("  "); err == nil {
		t.Fatal("expected an error for a blank key")
	}
}

func TestLocateCentersRectangle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ip" {
			t.Errorf("path = %s, want /ip", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		w.Write([]byte(`{"status":"1","info":"OK","rectangle":"121.0,31.0;122.0,32.0"}`))
	})

	fix, err := client.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if math.Abs(fix.Latitude-31.5) > 1e-9 || math.Abs(fix.Longitude-121.5) > 1e-9 {
		t.Fatalf("fix = %+v, want rectangle center 31.5,121.5", fix)
	}
}

func TestLocateRejectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0","info":"INVALID_USER_KEY"}`))
	})
	if _, err := client.Locate(context.Background()); err == nil {
		t.Fatal("expected an error when the provider rejects the key")
	}
}

func TestReverseGeocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/regeo" {
			t.Errorf("path = %s, want /geocode/regeo", r.URL.Path)
		}
		if got := r.URL.Query().Get("location"); got != "121.473700,31.230400" {
			t.Errorf("location = %q", got)
		}
		w.Write([]byte(`{"status":"1","info":"OK","regeocode":{"formatted_address":"Shanghai, Huangpu District"}}`))
	})

	addr, err := client.ReverseGeocode(context.Background(), Fix{Latitude: 31.2304, Longitude: 121.4737})
	if err != nil {
		t.Fatalf("regeo: %v", err)
	}
	if addr != "Shanghai, Huangpu District" {
		t.Fatalf("address = %q", addr)
	}
}

func TestSearchNearby(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/place/around" {
			t.Errorf("path = %s, want /place/around", r.URL.Path)
		}
		if got := r.URL.Query().Get("keywords"); got != "pet shelter" {
			t.Errorf("keywords = %q", got)
		}
		w.Write([]byte(`{"status":"1","info":"OK","pois":[
			{"name":"Paws Haven","address":"12 Nanjing Rd","distance":"420","location":"121.48,31.23"},
			{"name":"Happy Tails","address":"88 Huaihai Rd","distance":"1300","location":"not-a-location"}
		]}`))
	})

	places, err := client.SearchNearby(context.Background(), Fix{Latitude: 31.23, Longitude: 121.47}, "pet shelter")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	if places[0].Name != "Paws Haven" || places[0].Distance != "420" {
		t.Fatalf("first place = %+v", places[0])
	}
	if places[0].Fix.Longitude != 121.48 {
		t.Fatalf("first place fix = %+v", places[0].Fix)
	}
	// A malformed POI location degrades to a zero fix, not an error.
	if places[1].Fix != (Fix{}) {
		t.Fatalf("second place fix = %+v, want zero", places[1].Fix)
	}
}

func TestParseLocation(t *testing.T) {
	if _, err := parseLocation("121.47"); err == nil {
		t.Fatal("expected error for missing component")
	}
	if _, err := parseLocation("abc,31.2"); err == nil {
		t.Fatal("expected error for bad longitude")
	}
	fix, err := parseLocation(" 121.47,31.23 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fix.Latitude != 31.23 || fix.Longitude != 121.47 {
		t.Fatalf("fix = %+v", fix)
	}
}
