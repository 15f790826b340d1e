package domain

import "time"

// FeedItem is one Google Merchant Center feed entry, one per sellable
// variant. All variants of a product share one ItemGroupID so the feed
// consumer can group them back into a single listing.
type FeedItem struct {
	ID                   string   `json:"id"` // "{productId}_{variantId}"
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Link                 string   `json:"link"`
	ImageLink            string   `json:"image_link"`
	AdditionalImageLinks []string `json:"additional_image_links,omitempty"`
	Availability         string   `json:"availability"` // "in stock" | "out of stock"
	Price                string   `json:"price"`        // "19.99 EUR"
	SalePrice            string   `json:"sale_price,omitempty"`
	Brand                string   `json:"brand"`
	ShippingWeight       string   `json:"shipping_weight"` // grams, "2000g"
	GTIN                 string   `json:"gtin,omitempty"`
	Condition            string   `json:"condition"` // always "new"
	ItemGroupID          string   `json:"item_group_id"`
	ProductType          string   `json:"product_type,omitempty"`
	CustomLabel0         string   `json:"custom_label_0,omitempty"`
	Size                 string   `json:"size,omitempty"`
	Color                string   `json:"color,omitempty"`
	Material             string   `json:"material,omitempty"`
	Pattern              string   `json:"pattern,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	AgeGroup             string   `json:"age_group,omitempty"`
}

// FeedRun records one pipeline execution for the run history.
type FeedRun struct {
	GeneratedAt  time.Time `json:"generated_at"`
	ProductCount int       `json:"product_count"`
	ItemCount    int       `json:"item_count"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
}
