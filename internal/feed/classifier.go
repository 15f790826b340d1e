package feed

import (
	"strings"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
)

// DefaultCategory is the bucket for products nothing in the table matches.
const DefaultCategory = "Overige"

// CategoryMapping maps one storefront category label to the product-type
// collection titles that identify membership.
type CategoryMapping struct {
	Category     string
	ProductTypes []string
}

// DefaultCategoryTable is the shop taxonomy. Order is significant: when a
// product carries collections from more than one category, the first entry
// in this table wins.
func DefaultCategoryTable() []CategoryMapping {
	return []CategoryMapping{
		{Category: "Hondenvoeding", ProductTypes: []string{"DROOGVOER", "NATVOER", "VERSVOER", "DIEPVRIESVOER", "PUPPYVOER"}},
		{Category: "Hondensnacks", ProductTypes: []string{"KAUWSNACKS", "TRAININGSSNACKS", "DENTAL SNACKS", "KOEKJES"}},
		{Category: "Op pad", ProductTypes: []string{"HALSBANDEN", "RIEMEN", "TUIGJES", "REISBENODIGDHEDEN"}},
		{Category: "Slapen", ProductTypes: []string{"HONDENMANDEN", "KUSSENS", "DEKENS", "BENCHES"}},
		{Category: "Spelen", ProductTypes: []string{"SPEELGOED", "APPORTEERSPEELGOED", "INTELLIGENTIESPEELGOED"}},
		{Category: "Verzorging", ProductTypes: []string{"VACHTVERZORGING", "GEBITSVERZORGING", "SHAMPOO", "SUPPLEMENTEN"}},
		{Category: "Thuis", ProductTypes: []string{"VOERBAKKEN", "DRINKBAKKEN", "HEKJES"}},
	}
}

// Classifier buckets products into (category, subcategory) pairs based on
// their collection memberships.
type Classifier struct {
	table []CategoryMapping
}

func NewClassifier(table []CategoryMapping) *Classifier {
	return &Classifier{table: table}
}

// Classify never fails. The finer product-type collections win over a
// direct top-level category collection because upstream files products at
// both granularities; subcategory is empty when only the broad collection
// matched. Unmatched products land in DefaultCategory.
func (c *Classifier) Classify(collections []domain.Collection) (category, subcategory string) {
	for _, m := range c.table {
		for _, pt := range m.ProductTypes {
			for _, col := range collections {
				if strings.EqualFold(col.Title, pt) {
					return m.Category, col.Title
				}
			}
		}
	}

	for _, m := range c.table {
		for _, col := range collections {
			if col.Title == m.Category {
				return m.Category, ""
			}
		}
	}

	return DefaultCategory, ""
}
