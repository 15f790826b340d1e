package client

import (
	"strconv"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
)

// productsQuery pages through the full catalog. 250 is the hard page-size
// ceiling of the Storefront API.
const productsQuery = `
query Products($cursor: String) {
  products(first: 250, after: $cursor) {
    pageInfo { hasNextPage endCursor }
    edges {
      node {
        id
        title
        descriptionHtml
        handle
        vendor
        collections(first: 10) { edges { node { title } } }
        images(first: 10) { edges { node { url } } }
        variants(first: 250) {
          edges {
            node {
              id
              title
              price { amount currencyCode }
              compareAtPrice { amount currencyCode }
              availableForSale
              weight
              weightUnit
              barcode
              selectedOptions { name value }
              image { url }
            }
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	URL string `json:"url"`
}

type selectedOptionNode struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantNode struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Price            moneyV2              `json:"price"`
	CompareAtPrice   *moneyV2             `json:"compareAtPrice"`
	AvailableForSale bool                 `json:"availableForSale"`
	Weight           float64              `json:"weight"`
	WeightUnit       string               `json:"weightUnit"`
	Barcode          string               `json:"barcode"`
	SelectedOptions  []selectedOptionNode `json:"selectedOptions"`
	Image            *imageNode           `json:"image"`
}

type productNode struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DescriptionHTML string `json:"descriptionHtml"`
	Handle          string `json:"handle"`
	Vendor          string `json:"vendor"`
	Collections     struct {
		Edges []struct {
			Node struct {
				Title string `json:"title"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"collections"`
	Images struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type productsResponse struct {
	Data struct {
		Products struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

func (p productNode) toDomain() domain.RemoteProduct {
	out := domain.RemoteProduct{
		ID:              p.ID,
		Title:           p.Title,
		DescriptionHTML: p.DescriptionHTML,
		Handle:          p.Handle,
		Vendor:          p.Vendor,
	}

	for _, e := range p.Collections.Edges {
		out.Collections = append(out.Collections, domain.Collection{Title: e.Node.Title})
	}
	for _, e := range p.Images.Edges {
		out.Images = append(out.Images, e.Node.URL)
	}
	for _, e := range p.Variants.Edges {
		out.Variants = append(out.Variants, e.Node.toDomain())
	}

	return out
}

func (v variantNode) toDomain() domain.RemoteVariant {
	out := domain.RemoteVariant{
		ID:               v.ID,
		Title:            v.Title,
		Price:            parseAmount(v.Price.Amount),
		AvailableForSale: v.AvailableForSale,
		Weight:           v.Weight,
		WeightUnit:       domain.WeightUnit(v.WeightUnit),
		Barcode:          v.Barcode,
	}

	if v.CompareAtPrice != nil {
		out.CompareAtPrice = parseAmount(v.CompareAtPrice.Amount)
	}
	for _, o := range v.SelectedOptions {
		out.SelectedOptions = append(out.SelectedOptions, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}
	if v.Image != nil {
		out.ImageURL = v.Image.URL
	}

	return out
}

// parseAmount defaults malformed amounts to zero: a partial feed item is
// preferable to aborting the whole run.
func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
