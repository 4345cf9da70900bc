// Package api provides the REST surface for room lifecycle and move
// submission.
//
// Endpoints:
//
// Room lifecycle:
//   - POST   /api/rooms           - create a room from a template
//   - GET    /api/rooms           - list active rooms
//   - GET    /api/rooms/{id}      - get a room's full-information view
//   - DELETE /api/rooms/{id}      - delete a room
//   - GET    /api/rooms/{id}/state?team=N - get a room's view for team N
//
// Moves:
//   - POST /api/rooms/{id}/place  - {player_id, x, y}
//   - POST /api/rooms/{id}/pass   - {player_id}
//   - POST /api/rooms/{id}/cancel - {player_id}
//
// Templates:
//   - GET /api/templates          - list available templates
//   - GET /api/templates/{name}   - get a template
//
// WebSocket:
//   - GET /ws?room={id}           - subscribe to a room's view updates
//
// Every move endpoint returns the acting player's view of the room and,
// when the server was built with a Hub, broadcasts it to every other
// subscriber of that room over WebSocket. A rejected move leaves the
// room untouched and is reported as 409 Conflict with the rejection
// reason as its body.
//
// Usage:
//
//	srv := api.NewServer(roomManager, templateManager, hub)
//	http.ListenAndServe(":8080", srv)
package api
