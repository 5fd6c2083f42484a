package predict

import (
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// ── Wire types ───────────────────────────────────────────────────

// predictRequest is the body of POST /predict.
type predictRequest struct {
	FuelType string             `json:"fuelType"`
	Recipe   []domain.Component `json:"recipe"`
}

// errorResponse is the body the backend sends with non-2xx statuses.
type errorResponse struct {
	Error string `json:"error"`
}

type catalogResponse struct {
	GasolineBases     []catalogGroup `json:"gasolineBases"`
	GasolineAdditives []catalogGroup `json:"gasolineAdditives"`
	DieselBases       []catalogGroup `json:"dieselBases"`
	DieselAdditives   []catalogGroup `json:"dieselAdditives"`
}

type catalogGroup struct {
	Value    string         `json:"value"`
	Label    string         `json:"label"`
	Children []catalogEntry `json:"children"`
}

type catalogEntry struct {
	Value   string              `json:"value"`
	Label   string              `json:"label"`
	Details map[string]*float64 `json:"details"`
}

type componentDetail struct {
	Name       string   `json:"name"`
	Percentage float64  `json:"percentage"`
	RON        *float64 `json:"RON"`
	CN         *float64 `json:"CN"`
	LHV        *float64 `json:"LHV"`
	Density    *float64 `json:"Density"`
}

// Non-property fields of the flat predict response.
const (
	fieldViability = "viability_insight"
	fieldInsight   = "ai_insight"
	fieldDetails   = "component_details"
	fieldID        = "id"
	fieldRecipe    = "recipe"
)

func (r catalogResponse) toDomain() *domain.Catalog {
	return &domain.Catalog{Sections: map[domain.FuelType]domain.CatalogSection{
		domain.Gasoline: {Bases: groups(r.GasolineBases), Additives: groups(r.GasolineAdditives)},
		domain.Diesel:   {Bases: groups(r.DieselBases), Additives: groups(r.DieselAdditives)},
	}}
}

func groups(in []catalogGroup) []domain.CatalogGroup {
	out := make([]domain.CatalogGroup, 0, len(in))
	for _, g := range in {
		dg := domain.CatalogGroup{Label: g.Label}
		for _, c := range g.Children {
			dg.Entries = append(dg.Entries, domain.CatalogEntry{
				Label:   c.Label,
				Value:   c.Value,
				Details: bag(c.Details),
			})
		}
		out = append(out, dg)
	}
	return out
}

func bag(m map[string]*float64) domain.PropertyBag {
	out := make(domain.PropertyBag, len(m))
	for k, v := range m {
		if v != nil {
			out[domain.PropertyKey(k)] = *v
		}
	}
	return out
}

// decodeResult turns the flat predict response into a BlendResult. Every
// numeric top-level field is a property; nulls are absent properties.
func decodeResult(body []byte, fuel domain.FuelType, sent domain.Recipe) (*domain.BlendResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	result := &domain.BlendResult{
		FuelType:   fuel,
		Recipe:     sent.Clone(),
		Properties: make(domain.PropertyBag),
	}
	for key, raw := range fields {
		switch key {
		case fieldViability:
			_ = json.Unmarshal(raw, &result.Insights.Viability)
		case fieldInsight:
			_ = json.Unmarshal(raw, &result.Insights.Summary)
		case fieldID:
			_ = json.Unmarshal(raw, &result.ID)
		case fieldRecipe:
			// The echoed recipe drops client IDs; the sent copy is kept.
		case fieldDetails:
			var details []componentDetail
			if err := json.Unmarshal(raw, &details); err != nil {
				return nil, fmt.Errorf("unmarshal %s: %w", fieldDetails, err)
			}
			for _, d := range details {
				result.ComponentDetails = append(result.ComponentDetails, d.toDomain())
			}
		default:
			var v *float64
			if err := json.Unmarshal(raw, &v); err != nil || v == nil {
				continue
			}
			result.Properties[domain.PropertyKey(key)] = *v
		}
	}
	return result, nil
}

func (d componentDetail) toDomain() domain.ComponentDetail {
	return domain.ComponentDetail{
		Name:       d.Name,
		Percentage: d.Percentage,
		Properties: bag(map[string]*float64{
			string(domain.RON):     d.RON,
			string(domain.CN):      d.CN,
			string(domain.LHV):     d.LHV,
			string(domain.Density): d.Density,
		}),
	}
}
