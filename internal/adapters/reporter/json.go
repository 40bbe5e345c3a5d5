package reporter

import (
	"encoding/json"

	"github.com/pinset/pinset/internal/core/domain"
)

// JSON renders a resolution as a machine-readable document.
type JSON struct{}

// jsonOutput represents the JSON output structure.
type jsonOutput struct {
	Manifest     string            `json:"manifest"`
	Digest       string            `json:"manifest_digest"`
	IndexURL     string            `json:"index_url"`
	Summary      jsonSummary       `json:"summary"`
	Requirements []jsonRequirement `json:"requirements"`
}

type jsonSummary struct {
	Total  int `json:"total"`
	Pinned int `json:"pinned"`
	Yanked int `json:"yanked"`
}

type jsonRequirement struct {
	Name      string `json:"name"`
	Requested string `json:"requested,omitzero"`
	Resolved  string `json:"resolved"`
	Group     string `json:"group,omitzero"`
	Yanked    bool   `json:"yanked,omitzero"`
}

// NewJSON creates the JSON reporter.
func NewJSON() *JSON {
	return &JSON{}
}

// Report generates JSON output for the resolution.
func (j *JSON) Report(res *domain.Resolution) ([]byte, error) {
	output := jsonOutput{
		Manifest:     res.ManifestPath,
		Digest:       res.ManifestDigest,
		IndexURL:     res.IndexURL,
		Requirements: make([]jsonRequirement, 0, len(res.Requirements)),
	}

	for _, rr := range res.Requirements {
		output.Summary.Total++
		if rr.Pinned() {
			output.Summary.Pinned++
		}
		if rr.Yanked {
			output.Summary.Yanked++
		}

		output.Requirements = append(output.Requirements, jsonRequirement{
			Name:      rr.Name,
			Requested: rr.Specifiers.String(),
			Resolved:  rr.Version,
			Group:     rr.Group,
			Yanked:    rr.Yanked,
		})
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
