package net

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"snappyruler/internal/share"
)

// Message is the wire format exchanged between sharing peers.
type Message struct {
	// Type is one of "stroke", "clear", or "sync".
	Type string `json:"type"`
	// Stroke carries a single stamped stroke for "stroke" messages.
	Stroke *share.StampedStroke `json:"stroke,omitempty"`
	// Strokes carries the full board for "sync" messages to late joiners.
	Strokes []share.StampedStroke `json:"strokes,omitempty"`
	// Site identifies the peer that issued a "clear".
	Site string `json:"site,omitempty"`
}

// peer wraps a websocket connection with the write lock gorilla requires
// for concurrent senders.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) send(msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(msg)
}

// Hub is run by the sharing host: it accepts websocket clients, relays
// every message to the other clients, and hands each message to the
// application.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*peer]bool

	// OnMessage is invoked for every message received from any client.
	OnMessage func(Message)
	// OnJoin is invoked when a client connects; its return value, if
	// non-nil, is sent to that client only (the full-board sync).
	OnJoin func() *Message
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		peers: make(map[*peer]bool),
	}
}

// Serve listens on the given port and handles websocket upgrades at /ws.
// It blocks, so callers run it in a goroutine.
func (h *Hub) Serve(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	log.Printf("[net] share host listening on port %d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[net] upgrade failed: %v", err)
		return
	}
	p := &peer{conn: conn}

	h.mu.Lock()
	h.peers[p] = true
	h.mu.Unlock()
	log.Printf("[net] client connected: %s", conn.RemoteAddr())

	if h.OnJoin != nil {
		if sync := h.OnJoin(); sync != nil {
			if err := p.send(*sync); err != nil {
				log.Printf("[net] sync to %s failed: %v", conn.RemoteAddr(), err)
			}
		}
	}

	go h.readLoop(p)
}

func (h *Hub) readLoop(p *peer) {
	defer func() {
		h.mu.Lock()
		delete(h.peers, p)
		h.mu.Unlock()
		p.conn.Close()
		log.Printf("[net] client disconnected: %s", p.conn.RemoteAddr())
	}()

	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			return
		}
		if h.OnMessage != nil {
			h.OnMessage(msg)
		}
		// Relay to everyone except the sender.
		h.broadcast(msg, p)
	}
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(msg Message) {
	h.broadcast(msg, nil)
}

func (h *Hub) broadcast(msg Message, exclude *peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == exclude {
			continue
		}
		if err := p.send(msg); err != nil {
			log.Printf("[net] send to %s failed: %v", p.conn.RemoteAddr(), err)
		}
	}
}

// Client is the joining side of a share session.
type Client struct {
	peer *peer

	// OnMessage is invoked for every message from the host.
	OnMessage func(Message)
}

// Dial connects to a sharing host at host:port.
func Dial(addr string) (*Client, error) {
	url := fmt.Sprintf("ws://%s/ws", addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	log.Printf("[net] connected to host %s", addr)
	return &Client{peer: &peer{conn: conn}}, nil
}

// Send transmits a message to the host.
func (c *Client) Send(msg Message) error {
	return c.peer.send(msg)
}

// Listen reads messages until the connection drops. It blocks, so callers
// run it in a goroutine.
func (c *Client) Listen() {
	defer c.peer.conn.Close()
	for {
		var msg Message
		if err := c.peer.conn.ReadJSON(&msg); err != nil {
			log.Printf("[net] disconnected from host: %v", err)
			return
		}
		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.peer.conn.Close()
}
