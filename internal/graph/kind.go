package graph

// Kind discriminates the node types the engine knows about.
// Parameterized variants behave like their base for traversal and selection.
type Kind string

const (
	KindSelector               Kind = "InteractiveSelector"
	KindSelectorWithParameters Kind = "InteractiveSelectorWithParameters"
	KindSwitch                 Kind = "InteractiveSwitch"
	KindSwitchWithParameters   Kind = "InteractiveSwitchWithParameters"
	KindSave                   Kind = "InteractiveSave"
	KindSeed                   Kind = "InteractiveSeed"
	KindReset                  Kind = "InteractiveReset"
	KindString                 Kind = "InteractiveString"
	KindStringMultiline        Kind = "InteractiveStringMultiline"
	KindStringAppend           Kind = "InteractiveStringAppend"
	KindInteger                Kind = "InteractiveInteger"
	KindFloat                  Kind = "InteractiveFloat"
	KindOther                  Kind = "other"
)

var knownKinds = map[Kind]struct{}{
	KindSelector:               {},
	KindSelectorWithParameters: {},
	KindSwitch:                 {},
	KindSwitchWithParameters:   {},
	KindSave:                   {},
	KindSeed:                   {},
	KindReset:                  {},
	KindString:                 {},
	KindStringMultiline:        {},
	KindStringAppend:           {},
	KindInteger:                {},
	KindFloat:                  {},
}

// ParseKind maps a host type tag to a Kind. Unknown tags map to KindOther.
func ParseKind(typeTag string) Kind {
	k := Kind(typeTag)
	if _, ok := knownKinds[k]; ok {
		return k
	}
	return KindOther
}

func (k Kind) String() string { return string(k) }

// IsSelector reports whether k is a selector or a selector with parameters.
func (k Kind) IsSelector() bool {
	return k == KindSelector || k == KindSelectorWithParameters
}

// IsSwitch reports whether k is a switch or a switch with parameters.
func (k Kind) IsSwitch() bool {
	return k == KindSwitch || k == KindSwitchWithParameters
}

// HasParameters reports whether k is one of the parameterized variants.
func (k Kind) HasParameters() bool {
	return k == KindSelectorWithParameters || k == KindSwitchWithParameters
}
