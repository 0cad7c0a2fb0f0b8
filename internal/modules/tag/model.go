package tag

// Tag is a label shared across products.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"tag_name"`
}
