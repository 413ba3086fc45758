package entity

// ConditionCode is the listings backend's renovation-state axis.
// The values are category ids, not an ordinal scale.
type ConditionCode int

const (
	ConditionNeedsFinishing  ConditionCode = 6
	ConditionRenovated       ConditionCode = 8
	ConditionFromDeveloper   ConditionCode = 9
	ConditionCapital         ConditionCode = 14
	ConditionNeedsRenovation ConditionCode = 18
)

// Filters is the structured query sent to the listings service.
// Zero values mean "not set".
type Filters struct {
	DistrictID  int    `json:"district_id,omitempty"`
	MicroareaID int    `json:"microarea_id,omitempty"`
	RoomsIn     int    `json:"rooms_in,omitempty"`
	PriceMax    int    `json:"price_max,omitempty"`
	ConditionIn int    `json:"condition_in,omitempty"`
	AreaMin     int    `json:"area_min,omitempty"`
	Type        string `json:"type,omitempty"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Location is a resolved place reference. Zero ids mean "not found".
type Location struct {
	MicroareaID  int    `json:"microarea_id,omitempty"`
	DistrictID   int    `json:"district_id,omitempty"`
	StreetID     int    `json:"street_id,omitempty"`
	DistrictText string `json:"district_text,omitempty"`
}

// IsZero reports whether nothing was resolved.
func (l Location) IsZero() bool {
	return l == Location{}
}
