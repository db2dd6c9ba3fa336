package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"Storefront/internal/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Query is a parsed product listing specification.
type Query struct {
	Search    string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	Featured  *bool
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type Result struct {
	Data       []store.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

var sortFields = []string{"id", "name", "description", "price", "category", "stock", "rating", "reviewCount", "createdAt"}

func validSortField(f string) bool {
	for _, s := range sortFields {
		if s == f {
			return true
		}
	}
	return false
}

// ParseQuery coerces URL query values into a Query. Malformed numeric or
// boolean values and unknown sort fields are reported as field messages;
// out-of-range page/limit values are clamped (page >= 1, 1 <= limit <= 100).
func ParseQuery(vals url.Values) (Query, []string) {
	q := Query{
		Search:    vals.Get("search"),
		Category:  vals.Get("category"),
		SortBy:    "id",
		SortOrder: "asc",
		Page:      defaultPage,
		Limit:     defaultLimit,
	}
	var details []string

	if v := vals.Get("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			details = append(details, "minPrice must be a number")
		} else {
			q.MinPrice = &f
		}
	}
	if v := vals.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			details = append(details, "maxPrice must be a number")
		} else {
			q.MaxPrice = &f
		}
	}
	if v := vals.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			details = append(details, "featured must be true or false")
		} else {
			q.Featured = &b
		}
	}
	if v := vals.Get("sortBy"); v != "" {
		if !validSortField(v) {
			details = append(details, fmt.Sprintf("sortBy must be one of: %s", strings.Join(sortFields, ", ")))
		} else {
			q.SortBy = v
		}
	}
	if v := vals.Get("sortOrder"); v != "" {
		if v != "asc" && v != "desc" {
			details = append(details, "sortOrder must be asc or desc")
		} else {
			q.SortOrder = v
		}
	}
	if v := vals.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, "page must be an integer")
		} else {
			q.Page = n
		}
	}
	if v := vals.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, "limit must be an integer")
		} else {
			q.Limit = n
		}
	}

	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	return q, details
}

// Run applies the listing pipeline: search, category, price range and
// featured filters, then a stable sort and the page window.
func Run(products []store.Product, q Query) Result {
	filtered := products

	if q.Search != "" {
		term := strings.ToLower(q.Search)
		filtered = keep(filtered, func(p store.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term) ||
				strings.Contains(strings.ToLower(p.Category), term)
		})
	}

	if q.Category != "" {
		// Dual-mode: the value may be a category name or a numeric id.
		catID, catIDErr := strconv.Atoi(q.Category)
		filtered = keep(filtered, func(p store.Product) bool {
			if strings.EqualFold(p.Category, q.Category) {
				return true
			}
			return catIDErr == nil && p.CategoryID == catID
		})
	}

	if q.MinPrice != nil {
		filtered = keep(filtered, func(p store.Product) bool { return p.Price >= *q.MinPrice })
	}
	if q.MaxPrice != nil {
		filtered = keep(filtered, func(p store.Product) bool { return p.Price <= *q.MaxPrice })
	}
	if q.Featured != nil {
		filtered = keep(filtered, func(p store.Product) bool { return p.Featured == *q.Featured })
	}

	sortProducts(filtered, q.SortBy, q.SortOrder == "desc")

	total := len(filtered)
	totalPages := (total + q.Limit - 1) / q.Limit
	offset := (q.Page - 1) * q.Limit

	window := []store.Product{}
	if offset < total {
		end := offset + q.Limit
		if end > total {
			end = total
		}
		window = filtered[offset:end]
	}

	return Result{
		Data: window,
		Pagination: Pagination{
			Page:        q.Page,
			Limit:       q.Limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: q.Page < totalPages,
			HasPrevPage: q.Page > 1,
		},
	}
}

func keep(in []store.Product, pred func(store.Product) bool) []store.Product {
	out := make([]store.Product, 0, len(in))
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts stable-sorts in place. There is no secondary tie-break key;
// equal elements keep their relative order.
func sortProducts(products []store.Product, field string, desc bool) {
	less := lessFunc(field)
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func lessFunc(field string) func(a, b store.Product) bool {
	switch field {
	case "name":
		return func(a, b store.Product) bool { return lowerLess(a.Name, b.Name) }
	case "description":
		return func(a, b store.Product) bool { return lowerLess(a.Description, b.Description) }
	case "price":
		return func(a, b store.Product) bool { return a.Price < b.Price }
	case "category":
		return func(a, b store.Product) bool { return lowerLess(a.Category, b.Category) }
	case "stock":
		return func(a, b store.Product) bool { return a.Stock < b.Stock }
	case "rating":
		return func(a, b store.Product) bool { return a.Rating < b.Rating }
	case "reviewCount":
		return func(a, b store.Product) bool { return a.ReviewCount < b.ReviewCount }
	case "createdAt":
		return func(a, b store.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b store.Product) bool { return a.ID < b.ID }
	}
}

func lowerLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
