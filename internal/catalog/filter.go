package catalog

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/product"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// newWindow is how recent a product has to be to get the "new" badge.
const newWindow = 7 * 24 * time.Hour

type Query struct {
	Category    string
	Subcategory string
	Search      string
	Sort        SortOrder
}

// Filter applies all predicates (every one must hold) and then sorts.
// The whole catalog is small enough that this runs over the full fetch.
func Filter(products []product.Product, q Query, now time.Time) []product.Product {
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, q.Category) {
			continue
		}
		if q.Subcategory != "" && p.Subcategory != q.Subcategory {
			continue
		}
		if !matchesSearch(p, q.Search) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, q.Sort)
	return out
}

// matchesCategory is an exact match, falling back to a loose substring
// match for older rows whose category was free text.
func matchesCategory(p product.Product, want string) bool {
	if want == "" {
		return true
	}
	got, want := fold(p.Category), fold(want)
	return got == want || strings.Contains(got, want)
}

func matchesSearch(p product.Product, search string) bool {
	if search == "" {
		return true
	}
	needle := fold(search)
	return strings.Contains(fold(p.Name), needle) || strings.Contains(fold(p.Team), needle)
}

func sortProducts(ps []product.Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	default: // newest first
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
	}
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics so "Ñúñez" matches "nunez".
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Discount reports the sale badge: a product is on sale iff old_price
// is present and strictly greater than price.
func Discount(p product.Product) (percent int, onSale bool) {
	if p.OldPrice == nil || *p.OldPrice <= p.Price {
		return 0, false
	}
	return int(math.Round(100 * (*p.OldPrice - p.Price) / *p.OldPrice)), true
}

func IsNew(p product.Product, now time.Time) bool {
	return p.CreatedAt.After(now.Add(-newWindow))
}
