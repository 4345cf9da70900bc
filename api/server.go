package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/config"
	"github.com/variantgo/server/game/play"
	"github.com/variantgo/server/game/room"
	"github.com/variantgo/server/game/state"
	"github.com/variantgo/server/transport/ws"
)

// Server is the REST API for room lifecycle and move submission.
type Server struct {
	rooms     *room.Manager
	templates *config.Manager
	hub       *ws.Hub
	router    *mux.Router
}

// NewServer creates a new API server.
func NewServer(rooms *room.Manager, templates *config.Manager, hub *ws.Hub) *Server {
	s := &Server{
		rooms:     rooms,
		templates: templates,
		hub:       hub,
		router:    mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/rooms", s.handleCreateRoom).Methods("POST")
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms/{id}", s.handleGetRoom).Methods("GET")
	api.HandleFunc("/rooms/{id}", s.handleDeleteRoom).Methods("DELETE")

	api.HandleFunc("/rooms/{id}/state", s.handleRoomState).Methods("GET")
	api.HandleFunc("/rooms/{id}/place", s.handlePlace).Methods("POST")
	api.HandleFunc("/rooms/{id}/pass", s.handlePass).Methods("POST")
	api.HandleFunc("/rooms/{id}/cancel", s.handleCancel).Methods("POST")

	api.HandleFunc("/templates", s.handleListTemplates).Methods("GET")
	api.HandleFunc("/templates/{name}", s.handleGetTemplate).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Room handlers

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomID       string   `json:"room_id,omitempty"`
		TemplateName string   `json:"template_name"`
		Players      []uint64 `json:"players"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, err := s.templates.LoadTemplate(req.TemplateName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if len(req.Players) != tmpl.SeatCount {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("template %q needs %d players, got %d", req.TemplateName, tmpl.SeatCount, len(req.Players)))
		return
	}

	seats := make([]play.Seat, len(req.Players))
	for i, pid := range req.Players {
		player := pid
		seats[i] = play.Seat{Player: &player, Team: board.Color(i + 1)}
	}

	r2, err := s.rooms.Create(req.RoomID, tmpl, seats)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, r2.ToView(0))
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.rooms.List()

	views := make([]room.View, 0, len(rooms))
	for _, r2 := range rooms {
		views = append(views, r2.ToView(0))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(views),
		"rooms": views,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	r2, err := s.rooms.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, r2.ToView(0))
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.rooms.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("room %s deleted", id),
	})
}

func (s *Server) handleRoomState(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	team := uint8(0)
	if teamStr := r.URL.Query().Get("team"); teamStr != "" {
		if t, err := strconv.Atoi(teamStr); err == nil && t >= 0 && t <= 255 {
			team = uint8(t)
		}
	}

	r2, err := s.rooms.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, r2.ToView(team))
}

// Move handlers

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		PlayerID uint64 `json:"player_id"`
		X        uint32 `json:"x"`
		Y        uint32 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.applyAction(w, id, req.PlayerID, state.PlaceAction(req.X, req.Y))
}

func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		PlayerID uint64 `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.applyAction(w, id, req.PlayerID, state.PassAction())
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		PlayerID uint64 `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.applyAction(w, id, req.PlayerID, state.CancelAction())
}

func (s *Server) applyAction(w http.ResponseWriter, roomID string, playerID uint64, action state.Action) {
	r2, err := s.rooms.Get(roomID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if _, err := play.MakeAction(r2.Shared, playerID, action); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	if err := s.rooms.Save(roomID); err != nil {
		log.Printf("warning: failed to persist room %s after action: %v", roomID, err)
	}

	team := r2.Shared.TeamOf(playerID)
	view := r2.ToView(team)

	if s.hub != nil {
		s.hub.BroadcastToRoom(roomID, &view)
	}

	respondJSON(w, http.StatusOK, view)
}

// Template handlers

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.ListTemplates()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	tmpl, err := s.templates.LoadTemplate(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tmpl)
}

// WebSocket handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		http.Error(w, "room query parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.rooms.Get(roomID); err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, roomID)
}

// Health check

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
