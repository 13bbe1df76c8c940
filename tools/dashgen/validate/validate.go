// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and may only select metrics the watch server exports
// or recording rules define.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation problems. Errors fail generation; warnings are
// reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) merge(other *Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// histogram series share the base metric's registration.
var seriesSuffixes = []string{"_bucket", "_sum", "_count"}

func known(name string, metrics map[string]bool) bool {
	if metrics[name] {
		return true
	}
	for _, suffix := range seriesSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && metrics[base] {
			return true
		}
	}
	return false
}

// Expr validates a single PromQL expression. where names the expression's
// source in messages.
func Expr(where, expr string, metrics map[string]bool) *Result {
	res := &Result{}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return res
	}

	selectors := 0
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		if vs.Name != "" && !known(vs.Name, metrics) {
			res.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
	if selectors == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %q selects no series", where, expr))
	}
	return res
}

// Exprs validates a set of named expressions in a stable order.
func Exprs(exprs map[string]string, metrics map[string]bool) *Result {
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)

	res := &Result{}
	for _, name := range names {
		res.merge(Expr(name, exprs[name], metrics))
	}
	return res
}

// Dashboard validates every query expression in a built dashboard. Any value
// that marshals to Grafana dashboard JSON is accepted.
func Dashboard(dash any, metrics map[string]bool) *Result {
	data, err := json.Marshal(dash)
	if err != nil {
		return &Result{Errors: []string{fmt.Sprintf("marshaling dashboard: %v", err)}}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &Result{Errors: []string{fmt.Sprintf("reading dashboard JSON: %v", err)}}
	}

	exprs := make(map[string]string)
	collectExprs(doc, "dashboard", exprs)
	if len(exprs) == 0 {
		return &Result{Warnings: []string{"dashboard has no queries"}}
	}
	return Exprs(exprs, metrics)
}

// collectExprs walks decoded JSON and records every "expr" string, keyed by
// the title of the nearest enclosing panel.
func collectExprs(v any, where string, out map[string]string) {
	switch node := v.(type) {
	case map[string]any:
		if title, ok := node["title"].(string); ok && title != "" {
			where = title
		}
		if expr, ok := node["expr"].(string); ok {
			key := where
			if ref, ok := node["refId"].(string); ok {
				key += "/" + ref
			}
			out[key] = expr
		}
		for k, child := range node {
			if k != "expr" {
				collectExprs(child, where, out)
			}
		}
	case []any:
		for _, child := range node {
			collectExprs(child, where, out)
		}
	}
}
