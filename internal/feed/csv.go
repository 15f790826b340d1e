package feed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
)

// csvHeader matches the column names Merchant Center accepts for
// tab-separated/CSV uploads; kept for the legacy .csv endpoint.
var csvHeader = []string{
	"id", "title", "description", "link", "image link", "additional image link",
	"availability", "price", "sale price", "brand", "shipping weight", "gtin",
	"condition", "item group id", "product type", "custom label 0",
	"size", "color", "material", "pattern", "gender", "age group",
}

// SerializeCSV renders the same feed items as the legacy CSV document.
// Optional fields stay as empty columns; additional image links collapse
// into one comma-separated cell.
func SerializeCSV(items []domain.FeedItem) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range items {
		row := []string{
			item.ID,
			item.Title,
			item.Description,
			item.Link,
			item.ImageLink,
			strings.Join(item.AdditionalImageLinks, ","),
			item.Availability,
			item.Price,
			item.SalePrice,
			item.Brand,
			item.ShippingWeight,
			item.GTIN,
			item.Condition,
			item.ItemGroupID,
			item.ProductType,
			item.CustomLabel0,
			item.Size,
			item.Color,
			item.Material,
			item.Pattern,
			item.Gender,
			item.AgeGroup,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row for %s: %w", item.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return buf.String(), nil
}
