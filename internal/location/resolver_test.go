package location

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeGeocoder struct {
	place Place
	err   error
}

func (f fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (Place, error) {
	return f.place, f.err
}

func TestResolve_Success(t *testing.T) {
	r := NewResolver(
		FixedGate(true),
		StaticPosition{Lat: 38.7, Lon: -9.1},
		fakeGeocoder{place: Place{City: "Lisbon", Country: "Portugal"}},
		nil,
	)
	if got := r.Resolve(context.Background()); got != "Lisbon, Portugal" {
		t.Errorf("Resolve() = %q, want %q", got, "Lisbon, Portugal")
	}
}

func TestResolve_PermissionDeniedIsSilent(t *testing.T) {
	r := NewResolver(FixedGate(false), StaticPosition{Lat: 1, Lon: 1}, fakeGeocoder{}, nil)
	if got := r.Resolve(context.Background()); got != "" {
		t.Errorf("Resolve() = %q, want empty on denial", got)
	}
}

func TestResolve_PositionFailure(t *testing.T) {
	r := NewResolver(FixedGate(true), StaticPosition{}, fakeGeocoder{}, nil)
	if got := r.Resolve(context.Background()); got != Unavailable {
		t.Errorf("Resolve() = %q, want placeholder", got)
	}
}

func TestResolve_GeocodeFailure(t *testing.T) {
	r := NewResolver(
		FixedGate(true),
		StaticPosition{Lat: 1, Lon: 1},
		fakeGeocoder{err: fmt.Errorf("rate limited")},
		nil,
	)
	if got := r.Resolve(context.Background()); got != Unavailable {
		t.Errorf("Resolve() = %q, want placeholder", got)
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name  string
		place Place
		want  string
	}{
		{"city and country", Place{City: "Porto", Country: "Portugal"}, "Porto, Portugal"},
		{"country only", Place{Country: "Portugal"}, "Portugal"},
		{"city only", Place{City: "Porto"}, "Porto"},
		{"nothing", Place{}, Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.place); got != tt.want {
				t.Errorf("Compose(%+v) = %q, want %q", tt.place, got, tt.want)
			}
		})
	}
}

func TestNominatimReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("format") != "jsonv2" {
			t.Errorf("format = %q, want jsonv2", r.URL.Query().Get("format"))
		}
		w.Write([]byte(`{"address":{"town":"Sintra","country":"Portugal"}}`))
	}))
	defer srv.Close()

	geo := NewNominatim(srv.URL)
	place, err := geo.ReverseGeocode(context.Background(), 38.8, -9.4)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if place.City != "Sintra" || place.Country != "Portugal" {
		t.Errorf("place = %+v", place)
	}
}

func TestNominatimReverseGeocode_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	geo := NewNominatim(srv.URL)
	if _, err := geo.ReverseGeocode(context.Background(), 1, 1); err == nil {
		t.Error("expected error on non-200 status")
	}
}
