package ws

import (
	"encoding/json"
	"strings"
	"time"
)

type BidPlacedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"jobId"`
	Bidder    string `json:"bidder"`
	Timestamp string `json:"timestamp"`
}

// Notifier satisfies the bid usecase's notification dependency.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyBidPlaced(ownerEmail, jobID, bidderEmail string) {
	if n == nil || n.hub == nil {
		return
	}

	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return
	}

	evt := BidPlacedEvent{
		Type:      "bid_placed",
		JobID:     jobID,
		Bidder:    bidderEmail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(ownerEmail, b)
}
