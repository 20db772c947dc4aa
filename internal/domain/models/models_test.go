package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestZeroTimestampsAreOmitted(t *testing.T) {
	payloads := map[string]any{
		"seller":  Seller{Name: "Ana", Email: "ana@greenhaven.test"},
		"product": Product{Name: "Fern", SKU: "F-1"},
	}
	for name, v := range payloads {
		body, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		for _, key := range []string{`"created_at"`, `"updated_at"`} {
			if strings.Contains(string(body), key) {
				t.Errorf("%s: zero %s should be omitted, got %s", name, key, body)
			}
		}
	}
}

func TestSetTimestampIsKept(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	body, err := json.Marshal(Seller{Name: "Ana", CreatedAt: at})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"created_at":"2024-03-01T09:00:00Z"`) {
		t.Errorf("created_at missing from %s", body)
	}
}
