package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nordvolt/gridcore/internal/bess"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller is the subset of Runner's external orchestration API
// (spec §6) a WebSocket client may invoke: pause/resume/speed plus the
// bid and BESS-override setters. Handler depends on this interface,
// not *runner.Runner directly, so it can be tested without a real
// World behind it.
type Controller interface {
	Pause()
	Resume()
	SetSpeed(multiplier float64)
	SetDABid(hour int, mw float64) error
	SetFCRBid(hour int, mw float64) error
	SetUnitMode(id string, mode bess.Mode) error
	SetUnitMarket(id string, market bess.Market) error
}

// Handler upgrades HTTP connections to WebSocket and routes inbound
// control envelopes to a Controller.
type Handler struct {
	hub        *Hub
	controller Controller
}

func NewHandler(hub *Hub, controller Controller) *Handler {
	return &Handler{hub: hub, controller: controller}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade error: %v", err)
		return
	}

	client := NewClient(h.hub, conn)
	h.hub.Register(client)
	go client.writePump()

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: read error from client %s: %v", c.ID, err)
			}
			return
		}
		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("ws: invalid message from client %s: %v", c.ID, err)
		return
	}

	switch env.Type {
	case TypeControlPause:
		h.controller.Pause()

	case TypeControlResume:
		h.controller.Resume()

	case TypeControlSetSpeed:
		var p SetSpeedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("ws: invalid set_speed payload: %v", err)
			return
		}
		h.controller.SetSpeed(p.Multiplier)

	case TypeControlSubscribe:
		var p SubscribePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("ws: invalid subscribe payload: %v", err)
			return
		}
		c.Subscribe(p.Types)

	case TypeSetDABid:
		var p SetBidPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("ws: invalid bids:set_da payload: %v", err)
			return
		}
		if err := h.controller.SetDABid(p.Hour, p.MW); err != nil {
			log.Printf("ws: bids:set_da rejected: %v", err)
		}

	case TypeSetFCRBid:
		var p SetBidPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("ws: invalid bids:set_fcr payload: %v", err)
			return
		}
		if err := h.controller.SetFCRBid(p.Hour, p.MW); err != nil {
			log.Printf("ws: bids:set_fcr rejected: %v", err)
		}

	case TypeSetUnitMode:
		var p SetUnitModePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("ws: invalid bess:set_unit_mode payload: %v", err)
			return
		}
		mode, ok := parseMode(p.Mode)
		if !ok {
			log.Printf("ws: unknown unit mode %q", p.Mode)
			return
		}
		if err := h.controller.SetUnitMode(p.UnitID, mode); err != nil {
			log.Printf("ws: bess:set_unit_mode rejected: %v", err)
		}

	case TypeSetUnitMarket:
		var p SetUnitMarketPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("ws: invalid bess:set_unit_market payload: %v", err)
			return
		}
		market, ok := parseMarket(p.Market)
		if !ok {
			log.Printf("ws: unknown unit market %q", p.Market)
			return
		}
		if err := h.controller.SetUnitMarket(p.UnitID, market); err != nil {
			log.Printf("ws: bess:set_unit_market rejected: %v", err)
		}

	default:
		log.Printf("ws: unknown message type %q", env.Type)
	}
}

func parseMode(s string) (bess.Mode, bool) {
	switch s {
	case "none":
		return bess.ModeNone, true
	case "charge":
		return bess.ModeCharge, true
	case "discharge":
		return bess.ModeDischarge, true
	default:
		return bess.ModeNone, false
	}
}

func parseMarket(s string) (bess.Market, bool) {
	switch s {
	case "da":
		return bess.MarketDA, true
	case "fcr":
		return bess.MarketFCR, true
	case "auto":
		return bess.MarketAuto, true
	case "inactive":
		return bess.MarketInactive, true
	default:
		return bess.MarketInactive, false
	}
}
