package animal

// Status is a point-in-time snapshot of an animal. Field names are part of
// the public JSON contract. Only the capability fields of the animal's own
// variant are set.
type Status struct {
	Name             string   `json:"name"`
	Type             Kind     `json:"type"`
	Legs             int      `json:"legs"`
	IsHungry         bool     `json:"isHungry"`
	IsSleepy         bool     `json:"isSleepy"`
	CurrentDuty      *string  `json:"currentDuty"`
	CurrentAction    *string  `json:"currentAction"`
	AvailableActions []string `json:"availableActions"`

	CanFly   *bool `json:"canFly,omitempty"`
	CanCrow  *bool `json:"canCrow,omitempty"`
	CanBark  *bool `json:"canBark,omitempty"`
	CanChase *bool `json:"canChase,omitempty"`
}
