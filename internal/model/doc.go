// Package model defines the data structures shared by every gameshelf layer.
//
// # GameRecord
//
// The [GameRecord] struct is one catalogue entry as the collection API
// returns it:
//
//	type GameRecord struct {
//	    ID        RecordID // Server-assigned, opaque
//	    Title     string
//	    Platform  string
//	    Developer string
//	    Publisher string
//	}
//
// # Draft
//
// A [Draft] carries the same four text fields without an id. It is both the
// in-progress form state and the request body for create and update, which
// is what guarantees the client never sends an id.
//
// # Capability
//
// A [Capability] says whether a deployment permits writes ([CapabilityCRUD])
// or only listing ([CapabilityReadOnly]).
package model
