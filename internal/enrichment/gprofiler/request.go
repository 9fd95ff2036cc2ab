package gprofiler

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// WireParams maps g:Profiler HTTP parameter names to their values.
type WireParams map[string]string

// Values converts the parameters into form values.
func (w WireParams) Values() url.Values {
	v := make(url.Values, len(w))
	for k, s := range w {
		v.Set(k, s)
	}
	return v
}

// encodeQuery renders the parameters as k=v pairs joined by '&', sorted by
// key. Keys are emitted as is, values escaped like encodeURIComponent.
func (w WireParams) encodeQuery() string {
	keys := lo.Keys(w)
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(escapeComponent(w[k]))
	}
	return b.String()
}

// componentUnescaper restores the characters encodeURIComponent leaves
// alone but QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

type param struct {
	name  string
	value string
}

// rule encodes one attribute into zero or more wire parameters.
type rule struct {
	field  string
	encode func(*Attributes) []param
}

var rules = []rule{
	listRule("query", "query", func(a *Attributes) []string { return a.Query }),
	stringRule("organism", "organism", func(a *Attributes) string { return a.Organism }),
	boolRule("significant", "significant", func(a *Attributes) bool { return a.Significant }),
	boolRule("sortByStructure", "sort_by_structure", func(a *Attributes) bool { return a.SortByStructure }),
	boolRule("orderedQuery", "ordered_query", func(a *Attributes) bool { return a.OrderedQuery }),
	boolRule("regionQuery", "as_ranges", func(a *Attributes) bool { return a.RegionQuery }),
	boolRule("excludeIEA", "no_iea", func(a *Attributes) bool { return a.ExcludeIEA }),
	boolRule("underrep", "underrep", func(a *Attributes) bool { return a.Underrep }),
	{field: "hierFiltering", encode: func(a *Attributes) []param { return txHierFiltering(a.HierFiltering) }},
	floatRule("maxPValue", "user_thr", func(a *Attributes) float64 { return a.MaxPValue }),
	intRule("minSetSize", "min_set_size", func(a *Attributes) int { return a.MinSetSize }),
	intRule("maxSetSize", "max_set_size", func(a *Attributes) int { return a.MaxSetSize }),
	stringRule("correctionMethod", "threshold_algo", func(a *Attributes) string { return a.CorrectionMethod }),
	stringRule("domainSize", "domain_size_type", func(a *Attributes) string { return a.DomainSize }),
	stringRule("numericNS", "prefix", func(a *Attributes) string { return a.NumericNS }),
	listRule("customBG", "custbg", func(a *Attributes) []string { return a.CustomBG }),
	{field: "srcFilter", encode: func(a *Attributes) []param { return txSrcFilter(a.SrcFilter) }},
}

// transformAttrs encodes normalized attributes into wire parameters.
func transformAttrs(a *Attributes) WireParams {
	params := lo.FlatMap(rules, func(r rule, _ int) []param {
		return r.encode(a)
	})

	wp := make(WireParams, len(params))
	for _, p := range params {
		wp[p.name] = p.value
	}
	return wp
}

func boolRule(field, wire string, get func(*Attributes) bool) rule {
	return rule{field: field, encode: func(a *Attributes) []param {
		return []param{{wire, lo.Ternary(get(a), "1", "0")}}
	}}
}

// stringRule omits empty values.
func stringRule(field, wire string, get func(*Attributes) string) rule {
	return rule{field: field, encode: func(a *Attributes) []param {
		v := get(a)
		if v == "" {
			return nil
		}
		return []param{{wire, v}}
	}}
}

// listRule joins values with a space and omits empty lists.
func listRule(field, wire string, get func(*Attributes) []string) rule {
	return rule{field: field, encode: func(a *Attributes) []param {
		v := get(a)
		if len(v) == 0 {
			return nil
		}
		return []param{{wire, strings.Join(v, " ")}}
	}}
}

func floatRule(field, wire string, get func(*Attributes) float64) rule {
	return rule{field: field, encode: func(a *Attributes) []param {
		return []param{{wire, strconv.FormatFloat(get(a), 'f', -1, 64)}}
	}}
}

func intRule(field, wire string, get func(*Attributes) int) rule {
	return rule{field: field, encode: func(a *Attributes) []param {
		return []param{{wire, strconv.Itoa(get(a))}}
	}}
}

// txSrcFilter selects data sources, one sf_<code> flag each.
func txSrcFilter(srcs []string) []param {
	return lo.Map(srcs, func(src string, _ int) param {
		return param{"sf_" + src, "1"}
	})
}

func txHierFiltering(hf string) []param {
	var v string
	switch hf {
	case "moderate":
		v = "compact_rgroups"
	case "strong":
		v = "compact_ccomp"
	default:
		v = "none"
	}
	return []param{{"hierfiltering", v}}
}
