package domain

// WeightUnit is the unit Shopify reports variant weights in.
type WeightUnit string

const (
	WeightUnitKilograms WeightUnit = "KILOGRAMS"
	WeightUnitGrams     WeightUnit = "GRAMS"
)

// Collection is a storefront collection a product belongs to. Collection
// titles are the raw signal for category classification.
type Collection struct {
	Title string `json:"title"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RemoteVariant is one sellable SKU of a product as returned by the
// Storefront API. Price is always present; CompareAtPrice of zero means
// "no discount".
type RemoteVariant struct {
	ID               string           `json:"id"` // opaque gid, e.g. gid://shopify/ProductVariant/123
	Title            string           `json:"title"`
	Price            float64          `json:"price"`
	CompareAtPrice   float64          `json:"compare_at_price"`
	AvailableForSale bool             `json:"available_for_sale"`
	Weight           float64          `json:"weight"`
	WeightUnit       WeightUnit       `json:"weight_unit"`
	Barcode          string           `json:"barcode"`
	SelectedOptions  []SelectedOption `json:"selected_options"`
	ImageURL         string           `json:"image_url"`
}

// RemoteProduct is a catalog product as retrieved from the Storefront API.
// A product always has at least one variant (the default variant).
type RemoteProduct struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	DescriptionHTML string          `json:"description_html"`
	Handle          string          `json:"handle"`
	Vendor          string          `json:"vendor"`
	Collections     []Collection    `json:"collections"`
	Images          []string        `json:"images"`
	Variants        []RemoteVariant `json:"variants"`
}
