package address

// Address is a saved shipping destination for a user. At most one of a
// user's addresses is the default.
type Address struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	FullName  string `json:"fullName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
