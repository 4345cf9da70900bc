// Package room provides room lifecycle management for the variant-go
// play engine.
//
// The room package implements:
//   - Thread-safe room storage and retrieval
//   - Room ID generation via google/uuid
//   - Room lifecycle management (create, get, delete, expire)
//   - Concurrent access control
//   - Optional durable persistence
//
// Core Types:
//
// Manager is the main room manager handling all room operations. Room
// wraps a play.SharedState with the metadata a server needs around it:
// its ID, the template it was created from, and access timestamps. View
// is the flattened, read-only snapshot broadcast to observers after
// every action.
//
// Usage:
//
//	manager := room.NewManager()
//
//	r, err := manager.Create("", tmpl, seats)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r, err = manager.Get(roomID)
//	rooms := manager.List()
//
// Cleanup:
//
// Rooms can be explicitly deleted or expired based on inactivity via
// CleanupExpiredSessions.
package room
