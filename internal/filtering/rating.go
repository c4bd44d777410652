package filtering

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// Rating derives a pseudo-score in [3.0, 5.0] from the submission id, in
// one-decimal steps. Ratings are not stored anywhere; deriving them from
// the identifier keeps them stable across reloads. This is a presentation
// placeholder, not a business rule.
func Rating(id uuid.UUID) float64 {
	h := fnv.New32a()
	h.Write(id[:])
	return 3.0 + float64(h.Sum32()%21)/10.0
}
