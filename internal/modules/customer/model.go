package customer

// Customer is shared by every product it is linked to. Names are unique
// case-insensitively.
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"customer_name"`
}
