package feed

import (
	"strings"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
)

// Google Merchant Center validates the feed strictly: the XML declaration,
// the g: namespace, the per-item child order and the exact escape entities
// below are all part of the contract. encoding/xml cannot emit g:-prefixed
// element names without rewriting them, so the document is templated by hand.

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// SerializeXML renders the feed items as a Google Merchant RSS 2.0
// document. Pure function of its input; items are separated by a blank
// line to keep successive feeds diffable.
func SerializeXML(items []domain.FeedItem) string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<rss xmlns:g=\"http://base.google.com/ns/1.0\" version=\"2.0\">\n")
	b.WriteString("<channel>\n")

	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		writeItem(&b, item)
	}

	b.WriteString("</channel>\n")
	b.WriteString("</rss>\n")

	return b.String()
}

// writeItem emits the children in the fixed order Merchant Center expects.
// Optional fields are omitted entirely rather than emitted empty.
func writeItem(b *strings.Builder, item domain.FeedItem) {
	b.WriteString("<item>\n")

	writeElement(b, "g:id", item.ID)
	writeElement(b, "title", item.Title)
	writeElement(b, "description", item.Description)
	writeElement(b, "link", item.Link)
	writeElement(b, "g:image_link", item.ImageLink)
	for _, link := range item.AdditionalImageLinks {
		writeElement(b, "g:additional_image_link", link)
	}
	writeElement(b, "g:availability", item.Availability)
	writeElement(b, "g:price", item.Price)
	if item.SalePrice != "" {
		writeElement(b, "g:sale_price", item.SalePrice)
	}
	writeElement(b, "g:brand", item.Brand)
	writeElement(b, "g:shipping_weight", item.ShippingWeight)
	if item.GTIN != "" {
		writeElement(b, "g:gtin", item.GTIN)
	}
	writeElement(b, "g:condition", item.Condition)
	writeElement(b, "g:item_group_id", item.ItemGroupID)
	if item.ProductType != "" {
		writeElement(b, "g:product_type", item.ProductType)
	}
	if item.CustomLabel0 != "" {
		writeElement(b, "g:custom_label_0", item.CustomLabel0)
	}
	if item.Size != "" {
		writeElement(b, "g:size", item.Size)
	}
	if item.Color != "" {
		writeElement(b, "g:color", item.Color)
	}
	if item.Material != "" {
		writeElement(b, "g:material", item.Material)
	}
	if item.Pattern != "" {
		writeElement(b, "g:pattern", item.Pattern)
	}
	if item.Gender != "" {
		writeElement(b, "g:gender", item.Gender)
	}
	if item.AgeGroup != "" {
		writeElement(b, "g:age_group", item.AgeGroup)
	}

	b.WriteString("</item>\n")
}

func writeElement(b *strings.Builder, name, value string) {
	b.WriteString("  <")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscaper.Replace(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}
