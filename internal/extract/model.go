package extract

// Fulfillment is how the customer wants the order. Wire strings match
// the downstream fulfillment system.
type Fulfillment string

const (
	FulfillmentTakeout  Fulfillment = "takeout"
	FulfillmentDineIn   Fulfillment = "dine-in"
	FulfillmentDelivery Fulfillment = "delivery"
)

// Line is a candidate order line: a name+price snapshot of the catalog
// item at extraction time, so a catalog reload mid-call can never drift
// an already-quoted price.
type Line struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Modifications string  `json:"modifications"`
}

// Customer holds contact fields pulled from the conversation. Empty
// string means unknown; fields are never null so downstream
// serialization stays flat.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
