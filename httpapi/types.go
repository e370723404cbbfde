package httpapi

import (
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/search"
)

type analysisJSON struct {
	ID           core.ID       `json:"id"`
	Code         string        `json:"code,omitempty"`
	Name         string        `json:"name"`
	Sector       string        `json:"sector,omitempty"`
	Delay        string        `json:"delay,omitempty"`
	Description  string        `json:"description,omitempty"`
	Price        float64       `json:"price"`
	DisplayPrice string        `json:"display_price"`
	Category     core.Category `json:"category"`
}

func newAnalysisJSON(a core.Analysis) analysisJSON {
	return analysisJSON{
		ID:           a.ID,
		Code:         a.Code,
		Name:         a.Name,
		Sector:       a.Sector,
		Delay:        a.Delay,
		Description:  a.Description,
		Price:        a.Price,
		DisplayPrice: a.DisplayPrice(),
		Category:     a.Category,
	}
}

func toJSON(records []core.Analysis) []analysisJSON {
	out := make([]analysisJSON, len(records))
	for i, a := range records {
		out[i] = newAnalysisJSON(a)
	}
	return out
}

type listResponse struct {
	Count      int            `json:"count"`
	Results    []analysisJSON `json:"results"`
	DidYouMean []string       `json:"did_you_mean,omitempty"`
}

func newListResponse(records []core.Analysis) listResponse {
	return listResponse{Count: len(records), Results: toJSON(records)}
}

type categoryJSON struct {
	Category core.Category  `json:"category"`
	Count    int            `json:"count"`
	Results  []analysisJSON `json:"results"`
}

type statsResponse struct {
	Total      int                 `json:"total"`
	Dropped    int                 `json:"dropped"`
	Categories int                 `json:"categories"`
	Top        []categoryCountJSON `json:"top"`
}

type categoryCountJSON struct {
	Category core.Category `json:"category"`
	Count    int           `json:"count"`
}

func newStatsTop(counts []search.CategoryCount) []categoryCountJSON {
	out := make([]categoryCountJSON, len(counts))
	for i, c := range counts {
		out[i] = categoryCountJSON{Category: c.Category, Count: c.Count}
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}
