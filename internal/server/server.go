// Package server exposes the chip distribution engine over HTTP and
// websocket. It owns request validation and error mapping; the engine in
// internal/chips stays unaware of wire formats.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/chipflow/internal/chips"
	"github.com/lox/chipflow/internal/inventory"
)

// Version reported by the health endpoint.
const Version = "2.0.0"

// Server serves the distribution API. It holds the inventory store and a
// registry of live websocket sessions.
type Server struct {
	store       *inventory.Store
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// NewServer creates a server around the given inventory store.
func NewServer(logger *log.Logger, store *inventory.Store) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		store: store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Planning requests carry no credentials; any origin
				// may connect.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
	go s.run()
	return s
}

// Handler returns the routing mux. Exposed separately from Start so tests
// can mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/distribute", s.handleDistribute)
	mux.HandleFunc("/custom-distribution", s.handleCustomDistribution)
	mux.HandleFunc("/inventory", s.handleInventory)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start runs the HTTP server on addr and blocks until it stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}
	s.logger.Info("Starting chipflow server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server and closes all websocket sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// run handles websocket session lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// distribute computes the optimal result plus alternatives for a validated
// request. Shared by the HTTP handler and the websocket session.
func (s *Server) distribute(req *DistributeRequest) (*DistributeResponse, error) {
	snapshot := s.store.Snapshot()

	optimal, err := chips.Plan(req.Spec(), req.ForceMultiplier, snapshot)
	if err != nil {
		return nil, err
	}

	resp := &DistributeResponse{
		Optimal:      optimal,
		Alternatives: []*chips.Result{},
	}

	if req.includeAlternatives() {
		ranked := chips.Rank(req.Spec(), snapshot, req.maxAlternatives())
		// The optimal multiplier is not an alternative to itself.
		for _, alt := range ranked {
			if alt.Multiplier != optimal.Multiplier {
				resp.Alternatives = append(resp.Alternatives, alt)
			}
		}
	}

	resp.Recommendation = recommendation(optimal, resp.Alternatives, req.includeAlternatives())
	return resp, nil
}

// evaluateCustom runs the custom-distribution path for a validated request.
func (s *Server) evaluateCustom(req *CustomRequest) (*chips.Result, error) {
	return chips.EvaluateCustom(req.Spec(), req.Multiplier, req.ChipsPerPlayer, s.store.Snapshot())
}

// recommendation mirrors the decision the person setting up the game has
// to make: use the optimal plan, fall back to an alternative, or change
// the game parameters.
func recommendation(optimal *chips.Result, alternatives []*chips.Result, alternativesRequested bool) string {
	if optimal.Feasible {
		msg := fmt.Sprintf("Optimal distribution is feasible with current inventory. Use multiplier %v.", optimal.Multiplier)
		if len(alternatives) > 0 {
			msg += " Check alternatives below for other options."
		}
		return msg
	}

	for _, alt := range alternatives {
		if alt.Feasible {
			depth := "N/A"
			if alt.Info.BBPerPlayer != nil {
				depth = fmt.Sprintf("%.1f", *alt.Info.BBPerPlayer)
			}
			return fmt.Sprintf("Optimal distribution has shortages. Recommended alternative: use multiplier %v (stack depth: %s BB).", alt.Multiplier, depth)
		}
	}

	if !alternativesRequested {
		return fmt.Sprintf("Optimal distribution has shortages: %s. Enable include_alternatives to see other options.", formatShortage(optimal.Shortage))
	}
	return fmt.Sprintf("No feasible distribution found. Shortages: %s. Try reducing players, lowering buy-ins, or adjusting blinds.", formatShortage(optimal.Shortage))
}

func formatShortage(shortage chips.ChipSet) string {
	parts := make([]string, 0, len(shortage))
	for _, d := range chips.Inventory(shortage).Denominations() {
		parts = append(parts, fmt.Sprintf("%d x denomination %d", shortage[d], d))
	}
	return strings.Join(parts, ", ")
}

// HTTP handlers

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.distribute(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.logger.Debug("Distribution computed",
		"players", req.NumPlayers,
		"multiplier", resp.Optimal.Multiplier,
		"feasible", resp.Optimal.Feasible,
		"alternatives", len(resp.Alternatives))
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCustomDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.evaluateCustom(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snapshot := s.store.Snapshot()
		s.writeJSON(w, http.StatusOK, InventoryResponse{
			Inventory:  snapshot,
			TotalValue: snapshot.TotalValue(),
		})

	case http.MethodPut:
		var counts chips.Inventory
		if err := json.NewDecoder(r.Body).Decode(&counts); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if err := s.store.Replace(counts); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.logger.Info("Inventory replaced", "denominations", len(counts), "total_value", s.store.TotalValue())
		snapshot := s.store.Snapshot()
		s.writeJSON(w, http.StatusOK, InventoryResponse{
			Inventory:  snapshot,
			TotalValue: snapshot.TotalValue(),
		})

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: Version})
}

// handleWebSocket upgrades the connection and hands it to a session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeEngineError maps the core's error taxonomy onto HTTP statuses:
// malformed input is the client's fault, anything else is ours.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var mismatch *chips.InputMismatchError
	var invalid *chips.InvalidParameterError
	if errors.As(err, &mismatch) || errors.As(err, &invalid) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("Distribution failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error: "+err.Error())
}
