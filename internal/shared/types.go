package shared

// Asynq task type names. Kept in one place so the API (producer) and the
// worker (consumer) never drift.
const (
	TypeIngestionImport = "ingestion:import"
)

// Pagination is the offset/limit window every list query takes.
type Pagination struct {
	Limit  int `json:"limit" form:"limit"`
	Offset int `json:"offset" form:"offset"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps the window: limit defaults to 20 and caps at 100, offset
// floors at 0.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Paginated is the uniform shape of a list result.
type Paginated[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ImportTaskPayload is the asynq payload for a background import request.
type ImportTaskPayload struct {
	Source      Source  `json:"source"`
	ChannelID   string  `json:"channelId"`
	ProgramID   *string `json:"programId,omitempty"`
	ContentType *string `json:"contentType,omitempty"`
	Category    *string `json:"category,omitempty"`
	MaxResults  int     `json:"maxResults,omitempty"`
}
