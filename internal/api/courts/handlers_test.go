package courts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtbook/courtbook/internal/booking"
	"github.com/courtbook/courtbook/internal/db"
	"github.com/courtbook/courtbook/internal/store"
	"github.com/courtbook/courtbook/internal/testutil"
)

var testDay = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

type env struct {
	db  *db.DB
	svc *booking.Service
	mux *http.ServeMux
}

func newEnv(t *testing.T) *env {
	t.Helper()

	database := testutil.NewTestDB(t)
	svc := booking.NewService(database, booking.WithClock(func() time.Time {
		return testDay.Add(7 * time.Hour)
	}))
	h := NewHandler(database.Queries, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/courts", h.HandleList)
	mux.HandleFunc("GET /api/v1/courts/{id}", h.HandleGet)
	mux.HandleFunc("GET /api/v1/courts/{id}/slots", h.HandleSlots)
	mux.HandleFunc("GET /api/v1/availability", h.HandleAvailability)

	return &env{db: database, svc: svc, mux: mux}
}

func (e *env) seedCourt(t *testing.T, id, surface string, price int64) {
	t.Helper()
	err := e.db.Queries.UpsertCourt(context.Background(), store.Court{
		ID: id, Name: "Court " + id, Price: price, Surface: surface,
	})
	if err != nil {
		t.Fatalf("seed court: %v", err)
	}
}

func (e *env) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleList(t *testing.T) {
	e := newEnv(t)
	e.seedCourt(t, "c2", "CLAY", 1200)
	e.seedCourt(t, "c1", "HARD", 1500)

	rec := e.get("/api/v1/courts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var list []courtResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("court count: got %d, want 2", len(list))
	}
	// Ordered by name.
	if list[0].ID != "c1" || list[1].ID != "c2" {
		t.Fatalf("order: %+v", list)
	}
}

func TestHandleGet(t *testing.T) {
	e := newEnv(t)
	e.seedCourt(t, "c1", "HARD", 1500)

	rec := e.get("/api/v1/courts/c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var court courtResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &court); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if court.Name != "Court c1" || court.Price != 1500 || court.Surface != "HARD" {
		t.Fatalf("unexpected court: %+v", court)
	}

	if rec := e.get("/api/v1/courts/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown court: got %d, want 404", rec.Code)
	}
}

func TestHandleSlots(t *testing.T) {
	e := newEnv(t)
	e.seedCourt(t, "c1", "HARD", 1500)
	if err := e.svc.GenerateSlots(context.Background(), "c1", testDay); err != nil {
		t.Fatalf("generate slots: %v", err)
	}

	rec := e.get("/api/v1/courts/c1/slots?date=2026-09-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body)
	}
	var slots []SlotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(slots) != booking.SlotsPerDay {
		t.Fatalf("slot count: got %d, want %d", len(slots), booking.SlotsPerDay)
	}
	if slots[0].Court.Name != "Court c1" || slots[0].Court.Price != 1500 {
		t.Fatalf("missing court attributes: %+v", slots[0])
	}

	if rec := e.get("/api/v1/courts/c1/slots?date=bogus"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: got %d, want 400", rec.Code)
	}
	if rec := e.get("/api/v1/courts/missing/slots?date=2026-09-01"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown court: got %d, want 404", rec.Code)
	}
}

func TestHandleAvailability(t *testing.T) {
	e := newEnv(t)
	e.seedCourt(t, "c1", "HARD", 1500)
	e.seedCourt(t, "c2", "CLAY", 1200)
	for _, id := range []string{"c1", "c2"} {
		if err := e.svc.GenerateSlots(context.Background(), id, testDay); err != nil {
			t.Fatalf("generate slots: %v", err)
		}
	}

	rec := e.get("/api/v1/availability?date=2026-09-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var slots []SlotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(slots) != booking.SlotsPerDay*2 {
		t.Fatalf("slot count: got %d, want %d", len(slots), booking.SlotsPerDay*2)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime.Before(slots[i-1].StartTime) {
			t.Fatal("slots out of order")
		}
	}

	if rec := e.get("/api/v1/availability"); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date: got %d, want 400", rec.Code)
	}
}
