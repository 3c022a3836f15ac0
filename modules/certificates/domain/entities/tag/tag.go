package tag

import (
	"context"

	"github.com/google/uuid"
)

// Sync reports the tag assignments before and after a replacement.
type Sync struct {
	Previous []uuid.UUID
	Current  []uuid.UUID
}

// Changed reports whether the replacement actually altered the assignment
// set, ignoring order.
func (s Sync) Changed() bool {
	if len(s.Previous) != len(s.Current) {
		return true
	}
	seen := make(map[uuid.UUID]int, len(s.Previous))
	for _, id := range s.Previous {
		seen[id]++
	}
	for _, id := range s.Current {
		if seen[id] == 0 {
			return true
		}
		seen[id]--
	}
	return false
}

type Repository interface {
	// UpdateCertificateTags replaces the certificate's tag assignments.
	UpdateCertificateTags(ctx context.Context, certificateID uuid.UUID, tagIDs []uuid.UUID) (Sync, error)
}
