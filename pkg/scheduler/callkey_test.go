package scheduler

import "testing"

func TestDeriveKey_Deterministic(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer x", "Accept": "application/json"}
	body := []byte(`{"q":"test"}`)

	a := DeriveKey("POST", "https://api.example.com/search", headers, body)
	b := DeriveKey("POST", "https://api.example.com/search", headers, body)

	if a != b {
		t.Errorf("identical inputs produced different keys: %s vs %s", a, b)
	}
}

func TestDeriveKey_HeaderOrderIrrelevant(t *testing.T) {
	a := DeriveKey("GET", "https://example.com", map[string]string{"A": "1", "B": "2"}, nil)
	b := DeriveKey("GET", "https://example.com", map[string]string{"B": "2", "A": "1"}, nil)

	if a != b {
		t.Error("header map ordering changed the key")
	}
}

func TestDeriveKey_Distinguishes(t *testing.T) {
	base := DeriveKey("GET", "https://example.com/a", nil, nil)

	tests := []struct {
		name string
		key  string
	}{
		{"different method", DeriveKey("POST", "https://example.com/a", nil, nil)},
		{"different address", DeriveKey("GET", "https://example.com/b", nil, nil)},
		{"added header", DeriveKey("GET", "https://example.com/a", map[string]string{"X": "1"}, nil)},
		{"added body", DeriveKey("GET", "https://example.com/a", nil, []byte("payload"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == base {
				t.Errorf("key did not change for %s", tt.name)
			}
		})
	}
}

func TestDeriveKey_BodyContentMatters(t *testing.T) {
	a := DeriveKey("POST", "https://example.com", nil, []byte(`{"id":1}`))
	b := DeriveKey("POST", "https://example.com", nil, []byte(`{"id":2}`))

	if a == b {
		t.Error("different bodies produced the same key")
	}
}
