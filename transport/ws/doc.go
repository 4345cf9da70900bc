// Package ws broadcasts room view updates to connected observers over
// WebSocket, grouped by room.
//
// Usage:
//
//	hub := ws.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws/{roomID}", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, roomID)
//	})
//
//	hub.BroadcastToRoom(roomID, view)
package ws
