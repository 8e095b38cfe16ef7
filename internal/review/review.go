package review

// Review is one customer's rating of a product. A user reviews a product
// at most once.
type Review struct {
	ID        int    `json:"reviewId"`
	ProductID int    `json:"productId"`
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Summary is the aggregate stored back on the product row.
type Summary struct {
	Reviews      []Review `json:"reviews"`
	NumOfReviews int      `json:"numOfReviews"`
	Ratings      float64  `json:"ratings"`
}
