// Package listing exposes the server listings this engine reads and the
// per-server stat counters it increments. Listings are created and managed
// elsewhere; this core only checks ownership/existence and bumps counters.
package listing

import "time"

type Server struct {
	id        string
	name      string
	ownerID   string
	hidden    bool
	createdAt time.Time
}

func (s *Server) ID() string {
	return s.id
}

func (s *Server) Name() string {
	return s.name
}

func (s *Server) OwnerID() string {
	return s.ownerID
}

func (s *Server) Hidden() bool {
	return s.hidden
}

func (s *Server) CreatedAt() time.Time {
	return s.createdAt
}

func ReconstructServer(id, name, ownerID string, hidden bool, createdAt time.Time) *Server {
	return &Server{
		id:        id,
		name:      name,
		ownerID:   ownerID,
		hidden:    hidden,
		createdAt: createdAt,
	}
}

// Stats is the counter row attached to a server.
type Stats struct {
	ServerID string
	Likes    int64
	Views    int64
	Visits   int64
	Clicks   int64
}
