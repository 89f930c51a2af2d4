package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ewhitt/promptlab/internal/experiment"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// tailInterval is how often the ledger is re-read for new entries.
const tailInterval = time.Second

// costEvent is the outgoing websocket message for one new ledger entry.
type costEvent struct {
	Cost     float64           `json:"cost"`
	Metadata map[string]string `json:"metadata,omitempty"`
	TotalUSD float64           `json:"total_usd"`
}

// handleCostTail streams cost-ledger entries over a websocket: the current
// ledger on connect, then each newly appended entry as it lands.
func (s *Server) handleCostTail(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sent := 0
	var total float64

	ticker := time.NewTicker(tailInterval)
	defer ticker.Stop()

	for {
		entries, err := experiment.ReadLedger(s.cfg.OutputDir)
		if err != nil {
			log.Printf("server: reading ledger for tail: %v", err)
			return
		}

		for ; sent < len(entries); sent++ {
			e := entries[sent]
			total += e.Cost
			if err := conn.WriteJSON(costEvent{
				Cost:     e.Cost,
				Metadata: e.Metadata,
				TotalUSD: total,
			}); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("server: websocket write: %v", err)
				}
				return
			}
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
