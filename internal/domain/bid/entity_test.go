package bid

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestBid_UnmarshalJSON(t *testing.T) {
	payload := []byte(`{
		"email": "b@x.com",
		"jobId": "0f8fad5b-d9cb-469f-a165-70867728950e",
		"buyer": "a@x.com",
		"status": "pending",
		"price": 120,
		"comment": "can start today"
	}`)

	var b Bid
	if err := json.Unmarshal(payload, &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if b.Email != "b@x.com" || b.JobID != "0f8fad5b-d9cb-469f-a165-70867728950e" {
		t.Fatalf("unexpected core fields: %+v", b)
	}
	if b.Buyer != "a@x.com" || b.Status != "pending" {
		t.Fatalf("unexpected buyer/status: %+v", b)
	}
	if _, ok := b.Extra["price"]; !ok {
		t.Fatalf("expected price in Extra")
	}
	if b.Extra["comment"] != "can start today" {
		t.Fatalf("expected comment in Extra, got %+v", b.Extra)
	}
}

func TestBid_StatusAcceptsArbitraryText(t *testing.T) {
	var b Bid
	if err := json.Unmarshal([]byte(`{"status":"totally made up state"}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Status != "totally made up state" {
		t.Fatalf("status must pass through verbatim, got %q", b.Status)
	}
}

func TestBid_MarshalJSON(t *testing.T) {
	id := uuid.New()
	b := Bid{
		ID:     id,
		Email:  "b@x.com",
		JobID:  "job-1",
		Buyer:  "a@x.com",
		Status: "rejected",
		Extra:  map[string]any{"price": float64(99)},
	}

	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}

	if out["_id"] != id.String() {
		t.Fatalf("expected _id %s, got %v", id, out["_id"])
	}
	if out["price"] != float64(99) {
		t.Fatalf("expected flattened price, got %v", out)
	}
	if out["status"] != "rejected" {
		t.Fatalf("expected status rejected, got %v", out["status"])
	}
}
