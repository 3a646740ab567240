package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/models/entities"
)

// jsonCache stores values the way the Redis backend does: marshaled to
// JSON on Set, raw bytes on Get.
type jsonCache struct {
	data map[string][]byte
}

func newJSONCache() *jsonCache {
	return &jsonCache{data: make(map[string][]byte)}
}

func (c *jsonCache) Set(key string, value interface{}, duration time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.data[key] = raw
}

func (c *jsonCache) Get(key string) (interface{}, bool) {
	raw, found := c.data[key]
	if !found {
		return nil, false
	}
	return raw, true
}

func (c *jsonCache) Delete(key string) {
	delete(c.data, key)
}

func (c *jsonCache) Close() error {
	return nil
}

func (c *jsonCache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, val, duration)
	return val, nil
}

func TestDecodeCached(t *testing.T) {
	t.Run("typed value passes through", func(t *testing.T) {
		in := []entities.Flight{{FlightNumber: "SU100"}}
		out, ok := decodeCached[[]entities.Flight](in)
		if !ok || len(out) != 1 || out[0].FlightNumber != "SU100" {
			t.Errorf("Expected pass-through, got %v %v", out, ok)
		}
	})

	t.Run("json bytes decode", func(t *testing.T) {
		raw, _ := json.Marshal(&dtos.StatsResponse{TotalFlights: 3})
		out, ok := decodeCached[*dtos.StatsResponse](raw)
		if !ok || out == nil || out.TotalFlights != 3 {
			t.Errorf("Expected decoded stats, got %v %v", out, ok)
		}
	})

	t.Run("garbage misses", func(t *testing.T) {
		if _, ok := decodeCached[*dtos.LookupResponse]([]byte("{nope")); ok {
			t.Error("Expected decode failure to report a miss")
		}
		if _, ok := decodeCached[[]entities.Flight](42); ok {
			t.Error("Expected foreign type to report a miss")
		}
	})
}

func TestFlightService_ListFlights_ServedFromJSONBackedCache(t *testing.T) {
	calls := 0
	store := &mockFlightStore{
		listFunc: func(ctx context.Context, userID string) ([]entities.Flight, error) {
			calls++
			return []entities.Flight{{ID: "f1", FlightNumber: "SU100"}}, nil
		},
	}

	svc := NewFlightService(store, &mockUserStore{}, newJSONCache(), nil)

	for i := 0; i < 3; i++ {
		flights, err := svc.ListFlights(context.Background(), "user-1", nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(flights) != 1 || flights[0].FlightNumber != "SU100" {
			t.Fatalf("Unexpected flights on read %d: %+v", i, flights)
		}
	}
	if calls != 1 {
		t.Errorf("Expected cache hits after the first read, got %d store reads", calls)
	}
}

func TestLookupService_CacheHitAcrossJSONBackend(t *testing.T) {
	calls := 0
	resolver := &mockResolver{
		findFunc: func(ctx context.Context, flightNumber string, date time.Time) (*dtos.LookupResponse, error) {
			calls++
			return &dtos.LookupResponse{FlightNumber: flightNumber, Airline: "Aeroflot"}, nil
		},
	}

	svc := NewLookupService(resolver, newJSONCache(), nil)
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	first := svc.Lookup(context.Background(), "SU100", date)
	second := svc.Lookup(context.Background(), "SU100", date)

	if calls != 1 {
		t.Errorf("Expected the second lookup to hit the cache, got %d provider calls", calls)
	}
	if first.Airline != "Aeroflot" || second.Airline != "Aeroflot" {
		t.Errorf("Unexpected payloads: %+v / %+v", first, second)
	}
}
