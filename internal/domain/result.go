package domain

import "time"

// Insights are the narrative texts produced by the prediction service.
type Insights struct {
	Viability string
	Summary   string
}

// ComponentDetail is the catalogue data of one recipe component as
// echoed back by the prediction service.
type ComponentDetail struct {
	Name       string
	Percentage float64
	Properties PropertyBag
}

// BlendResult is the outcome of one successful prediction. It is never
// mutated after creation; callers share the pointer.
type BlendResult struct {
	ID               string
	FuelType         FuelType
	Recipe           Recipe
	Properties       PropertyBag
	ComponentDetails []ComponentDetail
	Insights         Insights
	CreatedAt        time.Time
}

// Summary is the short recipe label used in headers and pin lists.
func (b *BlendResult) Summary() string {
	return b.Recipe.Summary()
}
