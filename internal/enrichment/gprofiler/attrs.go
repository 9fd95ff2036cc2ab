package gprofiler

import (
	"slices"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"github.com/takatori/gprofiler/internal/enrichment"
	"github.com/takatori/gprofiler/internal/errors"
)

const (
	correctionAnalytical = "analytical"
	correctionGSCS       = "gSCS"
)

// Attributes are query options with every default applied. This is the
// shape the request encoder works on.
type Attributes struct {
	Query            []string
	Organism         string
	Significant      bool
	SortByStructure  bool
	OrderedQuery     bool
	RegionQuery      bool
	ExcludeIEA       bool
	Underrep         bool
	HierFiltering    string
	MaxPValue        float64
	MinSetSize       int
	MaxSetSize       int
	CorrectionMethod string
	DomainSize       string
	NumericNS        string // empty means unset
	CustomBG         []string
	SrcFilter        []string
}

func defaultAttributes() Attributes {
	return Attributes{
		Organism:         "hsapiens",
		Significant:      true,
		SortByStructure:  true,
		OrderedQuery:     false,
		RegionQuery:      false,
		ExcludeIEA:       false,
		Underrep:         false,
		HierFiltering:    "none",
		MaxPValue:        1.0,
		MinSetSize:       0,
		MaxSetSize:       0,
		CorrectionMethod: correctionAnalytical,
		DomainSize:       "annotated",
		CustomBG:         []string{},
		SrcFilter:        []string{},
	}
}

// normalizeOptions merges opts over the defaults and checks required fields.
// The result shares no slices with opts.
func normalizeOptions(opts *enrichment.QueryOptions) (*Attributes, error) {
	d := defaultAttributes()

	correction := opts.CorrectionMethod
	if correction == correctionGSCS {
		correction = correctionAnalytical
	}

	attrs := &Attributes{
		Query:            slices.Clone([]string(opts.Query)),
		Organism:         stringOr(opts.Organism, d.Organism),
		Significant:      lo.FromPtrOr(opts.Significant, d.Significant),
		SortByStructure:  lo.FromPtrOr(opts.SortByStructure, d.SortByStructure),
		OrderedQuery:     lo.FromPtrOr(opts.OrderedQuery, d.OrderedQuery),
		RegionQuery:      lo.FromPtrOr(opts.RegionQuery, d.RegionQuery),
		ExcludeIEA:       lo.FromPtrOr(opts.ExcludeIEA, d.ExcludeIEA),
		Underrep:         lo.FromPtrOr(opts.Underrep, d.Underrep),
		HierFiltering:    stringOr(opts.HierFiltering, d.HierFiltering),
		MaxPValue:        lo.FromPtrOr(opts.MaxPValue, d.MaxPValue),
		MinSetSize:       lo.FromPtrOr(opts.MinSetSize, d.MinSetSize),
		MaxSetSize:       lo.FromPtrOr(opts.MaxSetSize, d.MaxSetSize),
		CorrectionMethod: stringOr(correction, d.CorrectionMethod),
		DomainSize:       stringOr(opts.DomainSize, d.DomainSize),
		NumericNS:        opts.NumericNS,
		CustomBG:         listOr(opts.CustomBG, d.CustomBG),
		SrcFilter:        listOr(opts.SrcFilter, d.SrcFilter),
	}

	if len(attrs.Query) == 0 {
		return nil, failure.New(
			errors.ErrValidation,
			failure.Field(failure.Message("the query parameter is required")),
			failure.Context{
				"field": "query",
			},
		)
	}

	return attrs, nil
}

func (a *Attributes) clone() *Attributes {
	c := *a
	c.Query = slices.Clone(a.Query)
	c.CustomBG = slices.Clone(a.CustomBG)
	c.SrcFilter = slices.Clone(a.SrcFilter)
	return &c
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func listOr(v, fallback []string) []string {
	if v == nil {
		return fallback
	}
	return slices.Clone(v)
}
