// Package bid defines one user's offer on one job. A bidder may hold at most
// one bid per job; the store enforces that on (email, jobId).
package bid

import (
	"encoding/json"

	"github.com/google/uuid"
)

type Bid struct {
	ID     uuid.UUID
	Email  string
	JobID  string
	Buyer  string
	Status string
	Extra  map[string]any
}

func (b *Bid) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = Bid{}

	stashExtra := func(key string, v json.RawMessage) {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return
		}
		if b.Extra == nil {
			b.Extra = make(map[string]any)
		}
		b.Extra[key] = val
	}

	for k, v := range raw {
		switch k {
		case "_id":
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				continue
			}
			if id, err := uuid.Parse(s); err == nil {
				b.ID = id
			}
		case "email":
			if err := json.Unmarshal(v, &b.Email); err != nil {
				stashExtra(k, v)
			}
		case "jobId":
			if err := json.Unmarshal(v, &b.JobID); err != nil {
				stashExtra(k, v)
			}
		case "buyer":
			if err := json.Unmarshal(v, &b.Buyer); err != nil {
				stashExtra(k, v)
			}
		case "status":
			if err := json.Unmarshal(v, &b.Status); err != nil {
				stashExtra(k, v)
			}
		default:
			stashExtra(k, v)
		}
	}
	return nil
}

func (b Bid) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Extra)+5)
	for k, v := range b.Extra {
		out[k] = v
	}
	if b.ID != uuid.Nil {
		out["_id"] = b.ID.String()
	}
	out["email"] = b.Email
	out["jobId"] = b.JobID
	out["buyer"] = b.Buyer
	out["status"] = b.Status
	return json.Marshal(out)
}
