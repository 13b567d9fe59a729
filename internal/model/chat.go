package model

// ConversationTurn is one prior message of the chat, as sent by the client.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message string             `json:"message" binding:"required"`
	History []ConversationTurn `json:"history,omitempty"`
}

// ChatResponse is the outbound chat payload. TotalMatches reports the count
// before any relaxation fallback; Items reflect the effective result set.
type ChatResponse struct {
	Reply          string     `json:"reply"`
	Suggestions    []string   `json:"suggestions"`
	Items          []Vehicle  `json:"items"`
	TotalMatches   int        `json:"total_matches"`
	FiltersApplied *FilterSet `json:"filters_applied"`
	GeneratedAt    string     `json:"generated_at"`
}

// CategoryCount is one group-by bucket, e.g. ("SUV", 12).
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceBand is one fixed-width price bucket, labeled "[low, high]".
type PriceBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AggregateSummary is the per-request compression of a result set. Totals,
// group-bys and the year span are exact over the summarized set; price bands
// come from a bounded recency-prefix sample and are advisory only.
type AggregateSummary struct {
	Total         int             `json:"total"`
	ByBody        []CategoryCount `json:"by_body"`
	ByFuel        []CategoryCount `json:"by_fuel"`
	YearMin       int             `json:"year_min"`
	YearMax       int             `json:"year_max"`
	TopPriceBands []PriceBand     `json:"top_price_bands"`
}
