// Package mcpserver exposes room and move operations as Model Context
// Protocol tools, so an AI agent can sit in any seat of a room the same
// way a human player would over the REST or WebSocket surfaces.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_room: create a room from a template and seat list
//   - room_state: get the current board view for a seat
//   - list_rooms: list active rooms
//   - place: place a stone at a point
//   - pass: pass the current seat's turn
//   - cancel: undo the room's most recent action, whichever seat made it
//
// Usage:
//
//	srv := mcpserver.NewServer(roomManager, templateManager)
//	server.ServeStdio(srv.MCPServer())
package mcpserver
