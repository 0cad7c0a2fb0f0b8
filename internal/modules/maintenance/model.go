package maintenance

// Report counts the rows removed by one cleanup run.
type Report struct {
	Tags      int64 `json:"tags_removed"`
	Customers int64 `json:"customers_removed"`
	Quotes    int64 `json:"quotes_removed"`
}

func (r Report) Total() int64 { return r.Tags + r.Customers + r.Quotes }
