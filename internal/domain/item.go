package domain

type ItemCondition string

const (
	ItemConditionExcellent   ItemCondition = "excellent"
	ItemConditionGood        ItemCondition = "good"
	ItemConditionFair        ItemCondition = "fair"
	ItemConditionNeedsRepair ItemCondition = "needs_repair"
)

func (c ItemCondition) Valid() bool {
	switch c {
	case ItemConditionExcellent, ItemConditionGood, ItemConditionFair, ItemConditionNeedsRepair:
		return true
	}
	return false
}

// Item is an inventory line. AvailableQuantity + DistributedQuantity always
// equals TotalQuantity.
type Item struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Category            string        `json:"category"`
	TotalQuantity       int           `json:"totalQuantity"`
	AvailableQuantity   int           `json:"availableQuantity"`
	DistributedQuantity int           `json:"distributedQuantity"`
	Condition           ItemCondition `json:"condition"`
	Location            string        `json:"location"`
	Description         string        `json:"description,omitempty"`
	CreatedAt           string        `json:"createdAt"`
}

// ItemDraft has no available or distributed quantity: a new item starts with
// everything available.
type ItemDraft struct {
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	TotalQuantity int           `json:"totalQuantity"`
	Condition     ItemCondition `json:"condition"`
	Location      string        `json:"location"`
	Description   string        `json:"description,omitempty"`
}
