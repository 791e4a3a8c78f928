package config

// AppConfig is the top-level YAML structure.
type AppConfig struct {
	Version  string      `yaml:"version"`
	Session  SessionConf `yaml:"session"`
	Theme    ThemeConf   `yaml:"theme"`
	Workflow Workflow    `yaml:"workflow"`
}

// SessionConf holds tunable execution settings.
type SessionConf struct {
	ExecutionWorkers   int `yaml:"execution_workers"`
	QueueDepth         int `yaml:"queue_depth"`
	ExecutionTimeoutMs int `yaml:"execution_timeout_ms"`
	HistorySize        int `yaml:"history_size"` // finished executions kept for lookup
}

// ThemeConf overrides node colors and button labels. Empty fields keep the defaults.
type ThemeConf struct {
	ActiveColor   string `yaml:"active_color"`
	InactiveColor string `yaml:"inactive_color"`
	TooManyColor  string `yaml:"too_many_color"`
	SelectColor   string `yaml:"select_color"`
	SelectText    string `yaml:"select_text"`
	DeselectText  string `yaml:"deselect_text"`
}

// Workflow is the graph handed to the session on load.
type Workflow struct {
	Nodes []NodeDef `yaml:"nodes"`
	Links []LinkDef `yaml:"links"`
}

// NodeDef describes one node. Slots default to the ones of its type when omitted.
type NodeDef struct {
	ID      string                 `yaml:"id"`
	Type    string                 `yaml:"type"`
	Title   string                 `yaml:"title"`
	Inputs  []SlotDef              `yaml:"inputs"`
	Outputs []SlotDef              `yaml:"outputs"`
	Widgets map[string]interface{} `yaml:"widgets"`
}

// SlotDef is a named, typed input or output port.
type SlotDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LinkDef connects an output slot of Origin to an input slot of Target.
type LinkDef struct {
	ID         string `yaml:"id"`
	Origin     string `yaml:"origin"`
	OriginSlot int    `yaml:"origin_slot"`
	Target     string `yaml:"target"`
	TargetSlot int    `yaml:"target_slot"`
	Type       string `yaml:"type"`
}
