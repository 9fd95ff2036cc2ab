package enrichment

import (
	"context"
	"encoding/json"
)

// Symbols is a list of gene or protein identifiers. A single JSON string
// decodes into a one-element list.
type Symbols []string

func (s *Symbols) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*s = nil
		} else {
			*s = Symbols{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// QueryOptions describes one enrichment query. Nil pointers and empty
// strings mean "use the default".
type QueryOptions struct {
	Query            Symbols  `json:"query"`
	Organism         string   `json:"organism,omitempty"`
	Significant      *bool    `json:"significant,omitempty"`
	SortByStructure  *bool    `json:"sortByStructure,omitempty"`
	OrderedQuery     *bool    `json:"orderedQuery,omitempty"`
	RegionQuery      *bool    `json:"regionQuery,omitempty"`
	ExcludeIEA       *bool    `json:"excludeIEA,omitempty"`
	Underrep         *bool    `json:"underrep,omitempty"`
	HierFiltering    string   `json:"hierFiltering,omitempty"` // none, moderate, strong
	MaxPValue        *float64 `json:"maxPValue,omitempty"`
	MinSetSize       *int     `json:"minSetSize,omitempty"`
	MaxSetSize       *int     `json:"maxSetSize,omitempty"`
	CorrectionMethod string   `json:"correctionMethod,omitempty"` // gSCS (analytical), fdr, bonferroni
	DomainSize       string   `json:"domainSize,omitempty"`       // annotated, known
	NumericNS        string   `json:"numericNS,omitempty"`
	CustomBG         []string `json:"customBG,omitempty"`
	SrcFilter        []string `json:"srcFilter,omitempty"`
}

// Record is one row of an enrichment result.
type Record struct {
	Significant  bool     `json:"significant"`
	PValue       float64  `json:"p_value"`
	TermSize     int      `json:"term_size"`
	QuerySize    int      `json:"query_size"`
	OverlapSize  int      `json:"overlap_size"`
	Precision    float64  `json:"precision"`
	Recall       float64  `json:"recall"`
	TermID       string   `json:"term_id"`
	Domain       string   `json:"domain"`
	Subgraph     string   `json:"subgraph"`
	TermName     string   `json:"term_name"`
	Depth        string   `json:"depth"`
	Intersection []string `json:"intersection"`
}

type Enricher interface {
	Fetch(context.Context, *QueryOptions) ([]Record, error)
	FetchURL(context.Context, *QueryOptions) ([]Record, error)
	QueryURL(*QueryOptions) (string, bool, error)
}
