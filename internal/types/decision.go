package types

import (
	"time"

	"github.com/google/uuid"
)

// Decision is the merged determination record produced by the engine for one
// permit request. Downstream document generation consumes it as-is.
type Decision struct {
	ID             uuid.UUID              `json:"id"`
	Location       *LocationAnalysis      `json:"location"`
	Classification *PermitClassification  `json:"classification"`
	Load           *LoadCalculationResult `json:"load,omitempty"`
	GeneratedAt    time.Time              `json:"generated_at"`
}
