package config

import (
	"fmt"
	"strings"
)

// widgetKinds lists the value shape expected for well-known widgets.
var widgetKinds = map[string]string{
	"selected":           "bool",
	"propagate_deselect": "bool",
	"save_trigger":       "int",
	"seed_value":         "int",
	"integer":            "int",
	"float":              "number",
	"string":             "string",
	"filename_prefix":    "string",
	"join_prompt_using":  "string",
}

// Validate checks the config for:
//   - Required fields
//   - Duplicate node and link IDs
//   - Links that reference unknown nodes or negative slots
//   - Well-known widgets carrying a value of the wrong shape
func Validate(cfg *AppConfig) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	if cfg.Session.ExecutionWorkers < 0 {
		errs = append(errs, "session.execution_workers must not be negative")
	}
	if cfg.Session.QueueDepth < 0 {
		errs = append(errs, "session.queue_depth must not be negative")
	}
	if cfg.Session.ExecutionTimeoutMs < 0 {
		errs = append(errs, "session.execution_timeout_ms must not be negative")
	}
	if cfg.Session.HistorySize < 0 {
		errs = append(errs, "session.history_size must not be negative")
	}

	nodes := make(map[string]int)
	for i, n := range cfg.Workflow.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Sprintf("workflow.nodes[%d]: id is required", i))
			continue
		}
		if prev, ok := nodes[n.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate node id %q (first seen at nodes[%d], again at nodes[%d])", n.ID, prev, i))
		} else {
			nodes[n.ID] = i
		}
		if n.Type == "" {
			errs = append(errs, fmt.Sprintf("node %s: type is required", n.ID))
		}
		for name, v := range n.Widgets {
			want, known := widgetKinds[name]
			if !known {
				continue
			}
			if !valueHasShape(v, want) {
				errs = append(errs, fmt.Sprintf("node %s: widget %q must be %s, got %T", n.ID, name, want, v))
			}
		}
	}

	links := make(map[string]int)
	for i, l := range cfg.Workflow.Links {
		loc := fmt.Sprintf("workflow.links[%d]", i)
		if l.ID != "" {
			if prev, ok := links[l.ID]; ok {
				errs = append(errs, fmt.Sprintf("duplicate link id %q (first seen at links[%d], again at links[%d])", l.ID, prev, i))
			} else {
				links[l.ID] = i
			}
		}
		if _, ok := nodes[l.Origin]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown origin node %q", loc, l.Origin))
		}
		if _, ok := nodes[l.Target]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown target node %q", loc, l.Target))
		}
		if l.OriginSlot < 0 || l.TargetSlot < 0 {
			errs = append(errs, fmt.Sprintf("%s: slots must not be negative", loc))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func valueHasShape(v interface{}, shape string) bool {
	switch shape {
	case "bool":
		_, ok := v.(bool)
		return ok
	case "int":
		switch v.(type) {
		case int, int64, uint64:
			return true
		}
		return false
	case "number":
		switch v.(type) {
		case int, int64, uint64, float64:
			return true
		}
		return false
	case "string":
		_, ok := v.(string)
		return ok
	}
	return true
}
