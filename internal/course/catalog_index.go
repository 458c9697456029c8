package course

import (
	"fmt"
	"slices"
	"sort"
)

// catalog holds the module DAG with precomputed indices.
type catalog struct {
	modules    []Module
	byID       map[string]*Module
	topicOwner map[string]string
	dependents map[string][]string
	topoOrder  []Module
}

// c is the package-level catalog, set by init() in catalog.go.
var c *catalog

// buildCatalog indexes modules and computes a deterministic topological
// order (Kahn's algorithm, ties broken by declaration order).
func buildCatalog(modules []Module) *catalog {
	ct := &catalog{
		modules:    modules,
		byID:       make(map[string]*Module, len(modules)),
		topicOwner: make(map[string]string),
		dependents: make(map[string][]string),
	}

	declared := make(map[string]int, len(modules))
	for i := range ct.modules {
		m := &ct.modules[i]
		ct.byID[m.ID] = m
		declared[m.ID] = i
		for _, t := range m.Topics {
			ct.topicOwner[t.ID] = m.ID
		}
	}
	for i := range ct.modules {
		for _, prereqID := range ct.modules[i].Prerequisites {
			ct.dependents[prereqID] = append(ct.dependents[prereqID], ct.modules[i].ID)
		}
	}

	inDegree := make(map[string]int, len(modules))
	var queue []string
	for _, m := range modules {
		inDegree[m.ID] = len(m.Prerequisites)
		if inDegree[m.ID] == 0 {
			queue = append(queue, m.ID)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ct.topoOrder = append(ct.topoOrder, *ct.byID[id])

		var ready []string
		for _, depID := range ct.dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				ready = append(ready, depID)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return declared[ready[i]] < declared[ready[j]] })
		queue = append(queue, ready...)
	}

	return ct
}

// GetModule returns a module by ID, or error if not found.
func GetModule(id string) (Module, error) {
	m, ok := c.byID[id]
	if !ok {
		return Module{}, fmt.Errorf("module not found: %q", id)
	}
	return *m, nil
}

// HasModule reports whether id names a catalog module.
func HasModule(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Modules returns all modules in declaration order.
func Modules() []Module {
	return slices.Clone(c.modules)
}

// TopologicalOrder returns all modules so that every module follows its
// prerequisites.
func TopologicalOrder() []Module {
	return slices.Clone(c.topoOrder)
}

// ModuleForTopic returns the ID of the module owning topicID.
func ModuleForTopic(topicID string) (string, bool) {
	id, ok := c.topicOwner[topicID]
	return id, ok
}

// Prerequisites returns the direct prerequisite modules of id.
func Prerequisites(id string) []Module {
	m, ok := c.byID[id]
	if !ok {
		return nil
	}
	out := make([]Module, 0, len(m.Prerequisites))
	for _, prereqID := range m.Prerequisites {
		if p, ok := c.byID[prereqID]; ok {
			out = append(out, *p)
		}
	}
	return out
}

// IsUnlocked returns true if every prerequisite of id is in passed.
func IsUnlocked(id string, passed map[string]bool) bool {
	m, ok := c.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range m.Prerequisites {
		if !passed[prereqID] {
			return false
		}
	}
	return true
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateModules(c.modules)
}
