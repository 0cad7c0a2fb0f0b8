package image

// Image is a file path attached to exactly one product.
type Image struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Img       string `json:"img"`
}
