package wizard

// ActionType discriminates wizard intents
type ActionType string

const (
	ActionSelectService        ActionType = "select_service"
	ActionConfirmServiceChange ActionType = "confirm_service_change"
	ActionCancelServiceChange  ActionType = "cancel_service_change"

	ActionSetPropertyType ActionType = "set_property_type"
	ActionSetBedrooms     ActionType = "set_bedrooms"
	ActionSetBathrooms    ActionType = "set_bathrooms"
	ActionSetFurnished    ActionType = "set_furnished"

	ActionSetExtra     ActionType = "set_extra"
	ActionToggleBundle ActionType = "toggle_bundle"

	ActionSetContact ActionType = "set_contact"
	ActionSetSameDay ActionType = "set_same_day"

	ActionOpenSection ActionType = "open_section"
	ActionContinue    ActionType = "continue"

	ActionBeginSubmit ActionType = "begin_submit"
	ActionStartOver   ActionType = "start_over"

	// Applied by the engine after the submission collaborator returns;
	// never accepted from clients.
	actionSubmitSucceeded ActionType = "submit_succeeded"
	actionSubmitFailed    ActionType = "submit_failed"
)

// Contact field names accepted by ActionSetContact
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldSuburb        = "suburb"
	FieldPostcode      = "postcode"
	FieldPreferredDate = "preferredDate"
	FieldPreferredTime = "preferredTime"
	FieldComments      = "comments"
)

// Action is a wizard intent. Leaf UI components emit these; the reducer is
// the sole interpreter. Unused payload fields are ignored by each action type.
type Action struct {
	Type ActionType `json:"type"`

	ServiceID string `json:"serviceId,omitempty"` // select_service
	AddOnID   string `json:"addOnId,omitempty"`   // set_extra
	Quantity  int    `json:"quantity,omitempty"`  // set_extra
	Field     string `json:"field,omitempty"`     // set_contact
	Value     string `json:"value,omitempty"`     // set_contact, set_property_type, set_furnished
	Number    int    `json:"number,omitempty"`    // set_bedrooms, set_bathrooms, open_section
	Flag      bool   `json:"flag,omitempty"`      // toggle_bundle, set_same_day

	bookingID string // submit_succeeded, set by the engine only
}

// Internal reports whether the action type is reserved for the engine
func (a Action) Internal() bool {
	return a.Type == actionSubmitSucceeded || a.Type == actionSubmitFailed
}

// Effect is the side effect a transition asks its caller to perform.
// The only effect in this machine is the final submission call.
type Effect int

const (
	EffectNone Effect = iota
	EffectSubmit
)
