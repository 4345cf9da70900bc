package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/config"
	"github.com/variantgo/server/game/play"
	"github.com/variantgo/server/game/room"
	"github.com/variantgo/server/game/state"
)

// Server registers room and move tools against a room.Manager and
// config.Manager, so an agent can play a seat through MCP the same way
// a human plays through the REST or WebSocket surfaces.
type Server struct {
	rooms     *room.Manager
	templates *config.Manager
	mcpServer *server.MCPServer
}

// NewServer builds a Server and registers its tools.
func NewServer(rooms *room.Manager, templates *config.Manager) *Server {
	s := &Server{rooms: rooms, templates: templates}
	s.init()
	return s
}

// MCPServer returns the underlying MCP server for serving over stdio or
// HTTP.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) init() {
	s.mcpServer = server.NewMCPServer(
		"Go Variant Board Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Variant board game engine - MCP interface.

A room holds a grid board shared by multiple seats. Place stones to
surround and capture your opponents' groups; a move that would leave
your own group with no liberties is rejected unless it captures first.
Some rooms layer extra rules on top (pixel placement, ponnuki bonuses,
N+1 extra turns, zen-go shared teams) and some hide parts of the board
from you until you place or capture near them.

AVAILABLE TOOLS:
- create_room: create a room from a template
- list_rooms: list active rooms
- room_state: get the board as visible to one seat
- place: place a stone at (x, y)
- pass: pass the current seat's turn
- cancel: undo the room's most recent action (on your turn)

Always call room_state before place to confirm whose turn it is and
what the board looks like from your seat; a rejected action leaves the
room completely unchanged.`),
	)

	s.registerTools()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_room",
		Description: "Create a new room from a named template",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"template_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the template to use",
				},
				"players": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "Player IDs, one per seat, in seat order",
				},
			},
			Required: []string{"template_name", "players"},
		},
	}, s.handleCreateRoom)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List active rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListRooms)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "room_state",
		Description: "Get the board as visible to a seat's team",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID",
				},
				"team": map[string]interface{}{
					"type":        "integer",
					"description": "Viewer team (0 for full information)",
				},
			},
			Required: []string{"room_id"},
		},
	}, s.handleRoomState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "place",
		Description: "Place a stone at (x, y) for the calling player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID",
				},
				"player_id": map[string]interface{}{
					"type":        "integer",
					"description": "Player ID placing the stone",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate",
				},
			},
			Required: []string{"room_id", "player_id", "x", "y"},
		},
	}, s.handlePlace)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "pass",
		Description: "Pass the calling player's turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID",
				},
				"player_id": map[string]interface{}{
					"type":        "integer",
					"description": "Player ID passing",
				},
			},
			Required: []string{"room_id", "player_id"},
		},
	}, s.handlePass)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "cancel",
		Description: "Undo the room's most recent action; only the player whose turn it is may call it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID",
				},
				"player_id": map[string]interface{}{
					"type":        "integer",
					"description": "Player ID undoing",
				},
			},
			Required: []string{"room_id", "player_id"},
		},
	}, s.handleCancel)
}

func argString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func argUint64(args map[string]interface{}, key string) uint64 {
	v, _ := args[key].(float64)
	return uint64(v)
}

func argUint32(args map[string]interface{}, key string) uint32 {
	v, _ := args[key].(float64)
	return uint32(v)
}

func argUint8(args map[string]interface{}, key string) uint8 {
	v, _ := args[key].(float64)
	return uint8(v)
}

func toolArgs(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}
	return args
}

func (s *Server) handleCreateRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	templateName := argString(args, "template_name")

	playersRaw, _ := args["players"].([]interface{})
	tmpl, err := s.templates.LoadTemplate(templateName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(playersRaw) != tmpl.SeatCount {
		return mcp.NewToolResultError(fmt.Sprintf(
			"template %q needs %d players, got %d", templateName, tmpl.SeatCount, len(playersRaw))), nil
	}

	seats := make([]play.Seat, len(playersRaw))
	for i, p := range playersRaw {
		pid, ok := p.(float64)
		if !ok {
			return mcp.NewToolResultError("players must be an array of integers"), nil
		}
		player := uint64(pid)
		seats[i] = play.Seat{Player: &player, Team: board.Color(i + 1)}
	}

	r, err := s.rooms.Create("", tmpl, seats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created room %s from template %q (%dx%d, %d seats)",
		r.ID, templateName, tmpl.Width, tmpl.Height, tmpl.SeatCount)), nil
}

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms := s.rooms.List()

	if len(rooms) == 0 {
		return mcp.NewToolResultText("No active rooms."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active rooms (%d):\n\n", len(rooms))
	for _, r := range rooms {
		fmt.Fprintf(&b, "- %s (turn %d, %d members)\n", r.ID, r.Shared.Turn, len(r.Members))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	roomID := argString(args, "room_id")
	team := argUint8(args, "team")

	r, err := s.rooms.Get(roomID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view := r.ToView(team)
	return mcp.NewToolResultText(formatView(&view)), nil
}

func (s *Server) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	roomID := argString(args, "room_id")
	playerID := argUint64(args, "player_id")
	x := argUint32(args, "x")
	y := argUint32(args, "y")

	return s.applyAction(roomID, playerID, state.PlaceAction(x, y))
}

func (s *Server) handlePass(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	roomID := argString(args, "room_id")
	playerID := argUint64(args, "player_id")

	return s.applyAction(roomID, playerID, state.PassAction())
}

func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	roomID := argString(args, "room_id")
	playerID := argUint64(args, "player_id")

	return s.applyAction(roomID, playerID, state.CancelAction())
}

func (s *Server) applyAction(roomID string, playerID uint64, action state.Action) (*mcp.CallToolResult, error) {
	r, err := s.rooms.Get(roomID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := play.MakeAction(r.Shared, playerID, action); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.rooms.Save(roomID); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Action applied but failed to persist: %v\n\n%s", err, formatView(viewPtr(r, playerID)))), nil
	}

	return mcp.NewToolResultText(formatView(viewPtr(r, playerID))), nil
}

func viewPtr(r *room.Room, playerID uint64) *room.View {
	team := r.Shared.TeamOf(playerID)
	view := r.ToView(team)
	return &view
}

func formatView(v *room.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Room: %s | Turn: seat %d | Move: %d\n\n", v.RoomID, v.Turn, v.MoveNumber)

	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			cell := v.BoardCells[y*v.Width+x]
			switch cell {
			case 0:
				b.WriteString(".")
			default:
				fmt.Fprintf(&b, "%d", cell)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\nSeats:\n")
	for i, seat := range v.Seats {
		player := "empty"
		if seat.Player != nil {
			player = fmt.Sprintf("%d", *seat.Player)
		}
		fmt.Fprintf(&b, "  %d: team %d, player %s\n", i, seat.Team, player)
	}

	if len(v.Points) > 0 {
		fmt.Fprintf(&b, "\nPoints: %v\n", v.Points)
	}

	return b.String()
}
