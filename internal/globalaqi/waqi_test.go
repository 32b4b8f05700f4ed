package globalaqi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newTestWAQIClient(baseURL string, timeout time.Duration) *Client {
	c := NewClient(&http.Client{Timeout: timeout}, "demo", DemoSource{})
	c.baseURL = baseURL
	return c
}

func TestFetchSnapshotNormalizesStations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":[
			{"lat":31.2,"lon":121.5,"aqi":"85","station":{"name":"Shanghai, China"}},
			{"lat":0,"lon":0,"aqi":"60","station":{"name":"Null Island"}},
			{"lat":48.8,"lon":2.3,"aqi":"-","station":{"name":"Paris, France"}},
			{"lat":19.4,"lon":-99.1,"aqi":"600","station":{"name":"Out of Range"}},
			{"lat":95.0,"lon":12.0,"aqi":"30","station":{"name":"Bad Latitude"}},
			{"lat":40.0,"lon":-199.0,"aqi":"30","station":{"name":"Bad Longitude"}},
			{"lat":51.5,"lon":-0.1,"aqi":42,"station":{"name":"London"}}
		]}`))
	}))
	defer srv.Close()

	c := newTestWAQIClient(srv.URL, 2*time.Second)
	snapshot, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot.Locations) != 2 {
		t.Fatalf("locations = %d, want 2 after filtering", len(snapshot.Locations))
	}

	first := snapshot.Locations[0]
	if first.City != "Shanghai" {
		t.Errorf("City = %q, want substring before first comma", first.City)
	}
	if first.Location != "Shanghai, China" {
		t.Errorf("Location = %q, want full station name", first.Location)
	}
	if first.Country != "Unknown" {
		t.Errorf("Country = %q, want Unknown", first.Country)
	}
	if first.AQI != 85 {
		t.Errorf("AQI = %d, want 85", first.AQI)
	}
	if first.DominantPollutant != "PM2.5" || first.SourceName != "World Air Quality Index" {
		t.Errorf("tags = %q/%q", first.DominantPollutant, first.SourceName)
	}
	if len(first.Measurements) != 1 || first.Measurements[0].Value != 85 {
		t.Errorf("synthetic measurement = %+v", first.Measurements)
	}

	second := snapshot.Locations[1]
	if second.City != "London" || second.AQI != 42 {
		t.Errorf("second station = %s/%d, want London/42", second.City, second.AQI)
	}
}

func TestFetchSnapshotTruncatesToFifty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok","data":[`)
		for i := 0; i < 60; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"lat":%d.5,"lon":10.5,"aqi":"%d","station":{"name":"Station %d"}}`, i%80, i+1, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	c := newTestWAQIClient(srv.URL, 2*time.Second)
	snapshot, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot.Locations) != 50 {
		t.Fatalf("locations = %d, want cap of 50", len(snapshot.Locations))
	}
	// Truncation must be stable: first 50 stations in upstream order.
	for i, loc := range snapshot.Locations {
		if want := fmt.Sprintf("Station %d", i); loc.Location != want {
			t.Fatalf("locations[%d] = %q, want %q", i, loc.Location, want)
		}
	}
}

func TestFetchSnapshotTimeoutFallsBackToDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestWAQIClient(srv.URL, 50*time.Millisecond)
	snapshot, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}
	assertDemoSnapshot(t, snapshot)
}

func TestFetchSnapshotBadStatusFallsBackToDemo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","data":"invalid key"}`))
	}))
	defer srv.Close()

	c := newTestWAQIClient(srv.URL, 2*time.Second)
	snapshot, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}
	assertDemoSnapshot(t, snapshot)
}

func assertDemoSnapshot(t *testing.T, snapshot Snapshot) {
	t.Helper()

	if len(snapshot.Locations) != 8 {
		t.Fatalf("locations = %d, want the 8-city demo set", len(snapshot.Locations))
	}
	want := map[string]int{
		"New York":    25,
		"London":      35,
		"Tokyo":       45,
		"Delhi":       180,
		"Beijing":     120,
		"Los Angeles": 55,
		"Mumbai":      95,
		"São Paulo":   75,
	}
	for _, loc := range snapshot.Locations {
		aqi, ok := want[loc.City]
		if !ok {
			t.Errorf("unexpected demo city %q", loc.City)
			continue
		}
		if loc.AQI != aqi {
			t.Errorf("%s AQI = %d, want %d", loc.City, loc.AQI, aqi)
		}
		delete(want, loc.City)
	}
	if len(want) != 0 {
		t.Errorf("missing demo cities: %v", want)
	}
}

func TestFetchSnapshotIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":[
			{"lat":31.2,"lon":121.5,"aqi":"85","station":{"name":"Shanghai, China"}}
		]}`))
	}))
	defer srv.Close()

	c := newTestWAQIClient(srv.URL, 2*time.Second)
	a, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := c.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Synthetic measurement timestamps differ between fetches; compare
	// everything else.
	stripTimes := func(s Snapshot) []Record {
		out := make([]Record, len(s.Locations))
		for i, loc := range s.Locations {
			loc.Measurements = nil
			out[i] = loc
		}
		return out
	}
	if !reflect.DeepEqual(stripTimes(a), stripTimes(b)) {
		t.Error("snapshots from an unchanged upstream differ")
	}
}

func TestDemoSourceNeverFails(t *testing.T) {
	snapshot, err := DemoSource{}.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDemoSnapshot(t, snapshot)
}

func TestParseStationAQI(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{"85", 85, true},
		{" 42 ", 42, true},
		{"85.7", 85, true},
		{float64(91), 91, true},
		{"-", 0, false},
		{"", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseStationAQI(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("parseStationAQI(%v) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
