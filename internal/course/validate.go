package course

import (
	"fmt"
	"strings"
)

// validateModules performs all structural checks on the given modules.
// Returns a combined error describing all problems found, or nil if valid.
func validateModules(modules []Module) error {
	var errs []string

	idSet := make(map[string]bool, len(modules))
	topicSet := make(map[string]string)

	for _, m := range modules {
		if m.ID == "" {
			errs = append(errs, fmt.Sprintf("module %q has an empty ID", m.Name))
		}
		if idSet[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		idSet[m.ID] = true

		if len(m.Topics) == 0 {
			errs = append(errs, fmt.Sprintf("module %q has no topics", m.ID))
		}
		for _, t := range m.Topics {
			if owner, dup := topicSet[t.ID]; dup {
				errs = append(errs, fmt.Sprintf("topic %q in module %q already belongs to %q", t.ID, m.ID, owner))
			}
			topicSet[t.ID] = m.ID
		}
		if m.ID == FinalExamID {
			errs = append(errs, fmt.Sprintf("module ID %q is reserved for the final exam", m.ID))
		}
	}

	for _, m := range modules {
		for _, prereqID := range m.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("module %q references nonexistent prerequisite %q", m.ID, prereqID))
			}
		}
	}

	// Cycles (Kahn's algorithm).
	inDegree := make(map[string]int, len(modules))
	adj := make(map[string][]string)
	for _, m := range modules {
		inDegree[m.ID] = len(m.Prerequisites)
		for _, prereqID := range m.Prerequisites {
			adj[prereqID] = append(adj[prereqID], m.ID)
		}
	}
	var queue []string
	for _, m := range modules {
		if inDegree[m.ID] == 0 {
			queue = append(queue, m.ID)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adj[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
	if visited < len(modules) {
		var cycle []string
		for _, m := range modules {
			if inDegree[m.ID] > 0 {
				cycle = append(cycle, m.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving modules: %s", strings.Join(cycle, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("course catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
