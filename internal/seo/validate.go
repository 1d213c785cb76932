package seo

import (
	"encoding/json"
	"fmt"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/apperr"
)

// Validate checks the internal consistency of a graph: every node id is
// unique, and every reference resolves to a node defined in this graph or to
// one of the supplied external ids (nodes that live in another emitted
// document). Nodes nested inline, such as a WebPage mainEntity, count as
// definitions.
func Validate(g Graph, external ...string) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal graph: %w", err)
	}

	defined := map[string]int{}
	var refs []string
	collect(doc, defined, &refs)

	for id, n := range defined {
		if n > 1 {
			return apperr.NewValidation(fmt.Sprintf("duplicate @id %q in graph", id))
		}
	}
	for _, id := range external {
		defined[id]++
	}
	for _, ref := range refs {
		if defined[ref] == 0 {
			return apperr.NewValidation(fmt.Sprintf("dangling @id reference %q in graph", ref))
		}
	}
	return nil
}

// collect walks the decoded JSON-LD document. A map holding @id together
// with other keys defines that id; a map holding only @id is a reference.
func collect(v any, defined map[string]int, refs *[]string) {
	switch node := v.(type) {
	case map[string]any:
		if id, ok := node["@id"].(string); ok {
			if len(node) == 1 {
				*refs = append(*refs, id)
				return
			}
			defined[id]++
		}
		for _, child := range node {
			collect(child, defined, refs)
		}
	case []any:
		for _, item := range node {
			collect(item, defined, refs)
		}
	}
}
