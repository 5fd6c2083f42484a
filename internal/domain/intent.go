package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentHelp
	IntentQuit
	IntentShow
	IntentSwitchFuel
	IntentAddComponent
	IntentRemoveComponent
	IntentRenameComponent
	IntentSetPercentage
	IntentNormalize
	IntentPredict
	IntentPin
	IntentUnpin
	IntentListPinned
	IntentCompare
	IntentClearPinned
	IntentListComponents
	IntentDetails
	IntentExport
	IntentHistory
	IntentSave
	IntentLoad
)

var intentNames = map[IntentType]string{
	IntentUnknown:         "unknown",
	IntentHelp:            "help",
	IntentQuit:            "quit",
	IntentShow:            "show",
	IntentSwitchFuel:      "switch_fuel",
	IntentAddComponent:    "add_component",
	IntentRemoveComponent: "remove_component",
	IntentRenameComponent: "rename_component",
	IntentSetPercentage:   "set_percentage",
	IntentNormalize:       "normalize",
	IntentPredict:         "predict",
	IntentPin:             "pin",
	IntentUnpin:           "unpin",
	IntentListPinned:      "list_pinned",
	IntentCompare:         "compare",
	IntentClearPinned:     "clear_pinned",
	IntentListComponents:  "list_components",
	IntentDetails:         "details",
	IntentExport:          "export",
	IntentHistory:         "history",
	IntentSave:            "save",
	IntentLoad:            "load",
}

// String returns a snake_case intent name.
func (i IntentType) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// Intent represents a parsed user action.
type Intent struct {
	Type IntentType
	// Slot is the 1-based recipe slot for slot-addressed commands, 0 if unused.
	Slot int
	// Value carries the numeric argument of "set".
	Value float64
	// Payload is the remaining free text (component name, file path, fuel).
	Payload string
}
