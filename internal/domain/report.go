package domain

// Report is everything one CLI run produced, handed to output formatters.
type Report struct {
	TaxPolicy   TaxPolicy          `json:"tax_policy"`
	Assumptions []string           `json:"assumptions,omitempty"`
	Projections []ProjectionReport `json:"projections,omitempty"`
	Sweeps      []SweepReport      `json:"sweeps,omitempty"`
}
