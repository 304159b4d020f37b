// Package job defines the posted-task document. Core fields are typed;
// everything else a caller sends rides along in Extra untouched.
package job

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldDeadline = "deadline"
	FieldBidCount = "bid_count"
	FieldBuyer    = "buyer"
)

type Job struct {
	ID       uuid.UUID
	Title    string
	Category string
	Deadline string
	BidCount int64
	Buyer    map[string]any
	Extra    map[string]any

	supplied map[string]bool
}

// BuyerEmail returns the owning identity, or "" when the buyer object is
// absent or carries no email.
func (j Job) BuyerEmail() string {
	if j.Buyer == nil {
		return ""
	}
	s, _ := j.Buyer["email"].(string)
	return s
}

// Supplied reports whether the named core field was present in the payload
// this Job was decoded from. Partial updates replace supplied fields only.
func (j Job) Supplied(field string) bool {
	return j.supplied[field]
}

// MarkSupplied records core fields as present, for jobs constructed in code
// rather than decoded from a request body.
func (j *Job) MarkSupplied(fields ...string) {
	if j.supplied == nil {
		j.supplied = make(map[string]bool, len(fields))
	}
	for _, f := range fields {
		j.supplied[f] = true
	}
}

func (j *Job) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*j = Job{supplied: make(map[string]bool, len(raw))}

	stashExtra := func(key string, v json.RawMessage) {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return
		}
		if j.Extra == nil {
			j.Extra = make(map[string]any)
		}
		j.Extra[key] = val
	}

	for k, v := range raw {
		switch k {
		case "_id":
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				continue
			}
			if id, err := uuid.Parse(s); err == nil {
				j.ID = id
			}
		case FieldTitle:
			if err := json.Unmarshal(v, &j.Title); err != nil {
				stashExtra(k, v)
				continue
			}
			j.supplied[FieldTitle] = true
		case FieldCategory:
			if err := json.Unmarshal(v, &j.Category); err != nil {
				stashExtra(k, v)
				continue
			}
			j.supplied[FieldCategory] = true
		case FieldDeadline:
			if err := json.Unmarshal(v, &j.Deadline); err != nil {
				stashExtra(k, v)
				continue
			}
			j.supplied[FieldDeadline] = true
		case FieldBidCount:
			if err := json.Unmarshal(v, &j.BidCount); err != nil {
				stashExtra(k, v)
				continue
			}
			j.supplied[FieldBidCount] = true
		case FieldBuyer:
			if err := json.Unmarshal(v, &j.Buyer); err != nil {
				stashExtra(k, v)
				continue
			}
			j.supplied[FieldBuyer] = true
		default:
			stashExtra(k, v)
		}
	}
	return nil
}

func (j Job) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(j.Extra)+6)
	for k, v := range j.Extra {
		out[k] = v
	}
	if j.ID != uuid.Nil {
		out["_id"] = j.ID.String()
	}
	out[FieldTitle] = j.Title
	out[FieldCategory] = j.Category
	out[FieldDeadline] = j.Deadline
	out[FieldBidCount] = j.BidCount
	buyer := j.Buyer
	if buyer == nil {
		buyer = map[string]any{}
	}
	out[FieldBuyer] = buyer
	return json.Marshal(out)
}
