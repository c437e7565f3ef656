package server

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chunk-ca/internal/sims/life"
	"chunk-ca/pkg/grid"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	sim := life.New(4)
	s := New(sim, 1, 1000)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestCellRoundTrip(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/cells/-3/5", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := decode[CellValue](t, resp); got.Present {
		t.Fatalf("expected absent cell, got %+v", got)
	}

	resp = do(t, http.MethodPut, ts.URL+"/cells/-3/5", `{"value":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	got := decode[CellValue](t, do(t, http.MethodGet, ts.URL+"/cells/-3/5", ""))
	if !got.Present || got.Value != 1 || got.X != -3 || got.Z != 5 {
		t.Fatalf("unexpected cell %+v", got)
	}
}

func TestCellValidation(t *testing.T) {
	_, ts := newTestServer(t)
	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/cells/a/1", ""},
		{http.MethodPut, "/cells/1/1", `{"value":300}`},
		{http.MethodPut, "/cells/1/1", `not json`},
		{http.MethodPost, "/tick?n=0", ""},
		{http.MethodPost, "/tick?n=abc", ""},
		{http.MethodPost, "/reset?seed=x", ""},
	}
	for _, c := range cases {
		resp := do(t, c.method, ts.URL+c.path, c.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", c.method, c.path, resp.StatusCode)
		}
	}
}

func TestTickAdvancesBlinker(t *testing.T) {
	s, ts := newTestServer(t)
	g := s.sim.Grid()
	g.Set(grid.Pt(0, -1), 1)
	g.Set(grid.Pt(0, 0), 1)
	g.Set(grid.Pt(0, 1), 1)

	st := decode[SimStatus](t, do(t, http.MethodPost, ts.URL+"/tick?n=3", ""))
	if st.Generation != 3 || st.Name != "life" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.Bounds == nil || st.Parameters == nil {
		t.Fatalf("expected bounds and parameters, got %+v", st)
	}
	if v, _ := g.Get(grid.Pt(1, 0)); v != 1 {
		t.Fatal("blinker should be horizontal after an odd number of ticks")
	}

	resp := do(t, http.MethodGet, ts.URL+"/render", "")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read render: %v", err)
	}
	if strings.Count(string(body), "#") != 3 {
		t.Fatalf("expected three live cells in render:\n%s", body)
	}
}

func TestResetReseeds(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/tick", "")
	st := decode[SimStatus](t, do(t, http.MethodPost, ts.URL+"/reset?seed=9", ""))
	if st.Generation != 0 || st.Chunks == 0 {
		t.Fatalf("expected fresh seeded grid, got %+v", st)
	}
}

func TestRunAdvancesOnlyWhilePlaying(t *testing.T) {
	s, ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	s.mu.Lock()
	paused := s.sim.Grid().Generation()
	s.mu.Unlock()
	if paused != 0 {
		t.Fatalf("sim advanced while paused: generation %d", paused)
	}

	do(t, http.MethodPost, ts.URL+"/play", "")
	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.Lock()
		gen := s.sim.Grid().Generation()
		s.mu.Unlock()
		if gen > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("sim did not advance while playing")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if got := decode[map[string]string](t, resp); got["status"] != "ok" {
		t.Fatalf("unexpected health %v", got)
	}
}

func TestRenderRefusesOversizedRegion(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPut, ts.URL+"/cells/0/0", `{"value":1}`)
	do(t, http.MethodPut, ts.URL+"/cells/20000/20000", `{"value":1}`)

	resp := do(t, http.MethodGet, ts.URL+"/render", "")
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
	if got := decode[map[string]string](t, resp); got["error"] == "" {
		t.Fatalf("expected an error message, got %v", got)
	}

	do(t, http.MethodPut, ts.URL+"/cells/4611686018427387904/0", `{"value":1}`)
	if resp := do(t, http.MethodGet, ts.URL+"/render", ""); resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for a far-away cell, got %d", resp.StatusCode)
	}
}

func TestFitsRender(t *testing.T) {
	if !fitsRender(2048, 2048) {
		t.Fatal("2048x2048 is within the limit")
	}
	if fitsRender(MaxRenderCells, 2) || fitsRender(math.MaxInt, math.MaxInt) {
		t.Fatal("oversized regions must be refused")
	}
}
