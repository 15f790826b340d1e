package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// Projector expands products into one feed item per sellable variant.
type Projector struct {
	siteBaseURL string
	currency    string
}

func NewProjector(siteBaseURL, currency string) *Projector {
	return &Projector{
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
		currency:    currency,
	}
}

// Project returns one feed item per variant, in variant order. It never
// fails on malformed fields: missing numerics degrade to zero and missing
// strings to empty, so a single bad variant cannot sink the whole feed.
func (p *Projector) Project(product domain.RemoteProduct, category, subcategory string) []domain.FeedItem {
	productID := numericID(product.ID)
	description := stripHTML(product.DescriptionHTML)

	items := make([]domain.FeedItem, 0, len(product.Variants))
	for _, v := range product.Variants {
		variantID := numericID(v.ID)

		item := domain.FeedItem{
			ID:             fmt.Sprintf("%s_%s", productID, variantID),
			Title:          product.Title,
			Description:    description,
			Link:           fmt.Sprintf("%s/product/%s?variant=%s", p.siteBaseURL, product.Handle, variantID),
			Availability:   availability(v.AvailableForSale),
			Brand:          product.Vendor,
			ShippingWeight: formatWeight(v.Weight, v.WeightUnit),
			GTIN:           v.Barcode,
			Condition:      "new",
			ItemGroupID:    productID,
			ProductType:    category,
			CustomLabel0:   subcategory,
		}

		if v.CompareAtPrice > v.Price {
			// On sale: price carries the pre-discount reference, sale_price
			// the amount actually charged.
			item.Price = p.formatPrice(v.CompareAtPrice)
			item.SalePrice = p.formatPrice(v.Price)
		} else {
			item.Price = p.formatPrice(v.Price)
		}

		p.applyOptions(&item, v.SelectedOptions)
		if item.Size != "" {
			item.Title = product.Title + " - " + item.Size
		}

		if v.ImageURL != "" {
			item.ImageLink = v.ImageURL
		} else if len(product.Images) > 0 {
			item.ImageLink = product.Images[0]
			if len(product.Images) > 1 {
				item.AdditionalImageLinks = product.Images[1:]
			}
		}

		items = append(items, item)
	}

	return items
}

// applyOptions classifies variant option names into structured feed
// attributes. Matching is a case-insensitive substring check against the
// English and Dutch terms; unrecognized options are dropped. When several
// options map to one attribute the last processed wins.
func (p *Projector) applyOptions(item *domain.FeedItem, options []domain.SelectedOption) {
	for _, o := range options {
		name := strings.ToLower(o.Name)
		switch {
		case strings.Contains(name, "size") || strings.Contains(name, "maat"):
			item.Size = o.Value
		case strings.Contains(name, "color") || strings.Contains(name, "kleur"):
			item.Color = o.Value
		case strings.Contains(name, "material") || strings.Contains(name, "materiaal"):
			item.Material = o.Value
		case strings.Contains(name, "pattern") || strings.Contains(name, "patroon"):
			item.Pattern = o.Value
		case strings.Contains(name, "gender") || strings.Contains(name, "geslacht"):
			item.Gender = o.Value
		case strings.Contains(name, "age") || strings.Contains(name, "leeftijd"):
			item.AgeGroup = o.Value
		}
	}
}

func (p *Projector) formatPrice(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, p.currency)
}

func availability(availableForSale bool) string {
	if availableForSale {
		return "in stock"
	}
	return "out of stock"
}

// formatWeight normalizes to grams. Anything not explicitly kilograms is
// treated as already being grams.
func formatWeight(weight float64, unit domain.WeightUnit) string {
	grams := weight
	if unit == domain.WeightUnitKilograms {
		grams *= 1000
	}
	return strconv.FormatFloat(grams, 'f', -1, 64) + "g"
}

// numericID extracts the trailing numeric segment from an opaque global
// identifier like "gid://shopify/ProductVariant/99".
func numericID(gid string) string {
	s := gid
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// stripHTML flattens an HTML description to plain text. On unparsable
// input the raw string is returned as-is.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}
