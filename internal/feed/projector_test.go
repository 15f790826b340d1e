package feed

import (
	"testing"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjector() *Projector {
	return NewProjector("https://www.teddyshondenshop.nl", "EUR")
}

func baseProduct() domain.RemoteProduct {
	return domain.RemoteProduct{
		ID:              "gid://shopify/Product/11",
		Title:           "Puppy Voer",
		DescriptionHTML: "<b>Lekker</b> voer",
		Handle:          "puppy-voer",
		Vendor:          "Brand X",
		Images:          []string{"img1.jpg", "img2.jpg"},
		Variants: []domain.RemoteVariant{{
			ID:               "gid://shopify/ProductVariant/99",
			Price:            19.99,
			AvailableForSale: true,
			Weight:           2,
			WeightUnit:       domain.WeightUnitKilograms,
			Barcode:          "123",
			SelectedOptions:  []domain.SelectedOption{{Name: "Maat", Value: "2kg"}},
		}},
	}
}

func TestProjectSingleVariant(t *testing.T) {
	items := testProjector().Project(baseProduct(), "Hondenvoeding", "DROOGVOER")

	require.Len(t, items, 1)
	item := items[0]

	assert.Equal(t, "11_99", item.ID)
	assert.Equal(t, "Puppy Voer - 2kg", item.Title)
	assert.Equal(t, "Lekker voer", item.Description)
	assert.Equal(t, "https://www.teddyshondenshop.nl/product/puppy-voer?variant=99", item.Link)
	assert.Equal(t, "img1.jpg", item.ImageLink)
	assert.Equal(t, []string{"img2.jpg"}, item.AdditionalImageLinks)
	assert.Equal(t, "in stock", item.Availability)
	assert.Equal(t, "19.99 EUR", item.Price)
	assert.Empty(t, item.SalePrice)
	assert.Equal(t, "Brand X", item.Brand)
	assert.Equal(t, "2000g", item.ShippingWeight)
	assert.Equal(t, "123", item.GTIN)
	assert.Equal(t, "new", item.Condition)
	assert.Equal(t, "11", item.ItemGroupID)
	assert.Equal(t, "Hondenvoeding", item.ProductType)
	assert.Equal(t, "DROOGVOER", item.CustomLabel0)
	assert.Equal(t, "2kg", item.Size)
}

func TestProjectSalePriceSwap(t *testing.T) {
	p := baseProduct()
	p.Variants[0].Price = 10
	p.Variants[0].CompareAtPrice = 15

	items := testProjector().Project(p, "Hondenvoeding", "")

	require.Len(t, items, 1)
	assert.Equal(t, "15.00 EUR", items[0].Price, "price carries the pre-discount reference")
	assert.Equal(t, "10.00 EUR", items[0].SalePrice)
}

func TestProjectCompareAtPriceNotAboveIsNoSale(t *testing.T) {
	for _, compareAt := range []float64{0, 10} {
		p := baseProduct()
		p.Variants[0].Price = 10
		p.Variants[0].CompareAtPrice = compareAt

		items := testProjector().Project(p, "Hondenvoeding", "")

		require.Len(t, items, 1)
		assert.Equal(t, "10.00 EUR", items[0].Price)
		assert.Empty(t, items[0].SalePrice)
	}
}

func TestProjectWeightNormalization(t *testing.T) {
	tests := []struct {
		weight float64
		unit   domain.WeightUnit
		want   string
	}{
		{1.5, domain.WeightUnitKilograms, "1500g"},
		{250, domain.WeightUnitGrams, "250g"},
		{0, domain.WeightUnitGrams, "0g"},
	}

	for _, tt := range tests {
		p := baseProduct()
		p.Variants[0].Weight = tt.weight
		p.Variants[0].WeightUnit = tt.unit

		items := testProjector().Project(p, "", "")
		require.Len(t, items, 1)
		assert.Equal(t, tt.want, items[0].ShippingWeight)
	}
}

func TestProjectVariantExpansion(t *testing.T) {
	p := baseProduct()
	p.Variants = []domain.RemoteVariant{
		{ID: "gid://shopify/ProductVariant/1", Price: 5},
		{ID: "gid://shopify/ProductVariant/2", Price: 6},
		{ID: "gid://shopify/ProductVariant/3", Price: 7},
	}

	items := testProjector().Project(p, "", "")

	require.Len(t, items, 3)
	assert.Equal(t, "11_1", items[0].ID)
	assert.Equal(t, "11_2", items[1].ID)
	assert.Equal(t, "11_3", items[2].ID)
	for _, item := range items {
		assert.Equal(t, "11", item.ItemGroupID)
	}
}

func TestProjectNoSizeOptionLeavesTitleUnsuffixed(t *testing.T) {
	p := baseProduct()
	p.Variants[0].SelectedOptions = []domain.SelectedOption{{Name: "Smaak", Value: "Kip"}}

	items := testProjector().Project(p, "", "")

	require.Len(t, items, 1)
	assert.Equal(t, "Puppy Voer", items[0].Title)
	assert.Empty(t, items[0].Size, "unrecognized options are dropped")
}

func TestProjectOptionAttributeClassification(t *testing.T) {
	p := baseProduct()
	p.Variants[0].SelectedOptions = []domain.SelectedOption{
		{Name: "Kleur", Value: "Rood"},
		{Name: "Materiaal", Value: "Nylon"},
		{Name: "Patroon", Value: "Gestreept"},
		{Name: "Geslacht", Value: "Reu"},
		{Name: "Leeftijd", Value: "Puppy"},
		{Name: "Size", Value: "L"},
	}

	items := testProjector().Project(p, "", "")

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Rood", item.Color)
	assert.Equal(t, "Nylon", item.Material)
	assert.Equal(t, "Gestreept", item.Pattern)
	assert.Equal(t, "Reu", item.Gender)
	assert.Equal(t, "Puppy", item.AgeGroup)
	assert.Equal(t, "L", item.Size)
	assert.Equal(t, "Puppy Voer - L", item.Title)
}

func TestProjectLastOptionWinsPerAttribute(t *testing.T) {
	p := baseProduct()
	p.Variants[0].SelectedOptions = []domain.SelectedOption{
		{Name: "Maat", Value: "S"},
		{Name: "Size", Value: "M"},
	}

	items := testProjector().Project(p, "", "")

	require.Len(t, items, 1)
	assert.Equal(t, "M", items[0].Size)
}

func TestProjectVariantImageSuppressesAdditionalImages(t *testing.T) {
	p := baseProduct()
	p.Variants[0].ImageURL = "variant.jpg"

	items := testProjector().Project(p, "", "")

	require.Len(t, items, 1)
	assert.Equal(t, "variant.jpg", items[0].ImageLink)
	assert.Nil(t, items[0].AdditionalImageLinks)
}

func TestProjectProductImageFallback(t *testing.T) {
	p := baseProduct()
	p.Images = []string{"a.jpg", "b.jpg", "c.jpg"}

	items := testProjector().Project(p, "", "")

	require.Len(t, items, 1)
	assert.Equal(t, "a.jpg", items[0].ImageLink)
	assert.Equal(t, []string{"b.jpg", "c.jpg"}, items[0].AdditionalImageLinks)
}

func TestNumericID(t *testing.T) {
	assert.Equal(t, "99", numericID("gid://shopify/ProductVariant/99"))
	assert.Equal(t, "42", numericID("shopify:ProductVariant:42"))
	assert.Equal(t, "7", numericID("7"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Lekker voer", stripHTML("<b>Lekker</b> voer"))
	assert.Equal(t, "", stripHTML(""))
	assert.Equal(t, "plain", stripHTML("plain"))
}
