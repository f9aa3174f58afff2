package listing

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"product-showcase/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genProduct() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 10000),
		gen.AlphaString(),
		gen.NumString(),
		gen.OneConstOf(domain.CategoryNode, domain.CategoryDotNet, "Python Products", ""),
	).Map(func(values []interface{}) domain.Product {
		return domain.Product{
			ID:       values[0].(int),
			Name:     values[1].(string),
			Price:    values[2].(string),
			Category: values[3].(string),
		}
	})
}

func genProducts() gopter.Gen {
	return gen.SliceOf(genProduct())
}

func genSearch() gopter.Gen {
	return gen.OneGenOf(
		gen.AlphaString(),
		gen.NumString(),
		gen.OneConstOf("", "   ", "a", "A", "1", "0"),
	)
}

func productsInCategory(category string, n int) []domain.Product {
	products := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, domain.Product{
			ID:       i,
			Name:     fmt.Sprintf("Product %d", i),
			Price:    fmt.Sprintf("%d.00", i*10),
			Category: category,
		})
	}
	return products
}

func names(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

// Blank search text is the identity filter
func TestProperty_BlankSearchIsIdentity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("filter with blank search returns the input unchanged", prop.ForAll(
		func(products []domain.Product, blank string) bool {
			return reflect.DeepEqual(Filter(products, blank), products)
		},
		genProducts(),
		gen.OneConstOf("", " ", "\t", "  \n "),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Filter is exactly the extension of the name-or-price predicate
func TestProperty_FilterIsPredicateExtension(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("filter keeps exactly the matching products in order", prop.ForAll(
		func(products []domain.Product, search string) bool {
			got := Filter(products, search)

			if strings.TrimSpace(search) == "" {
				return reflect.DeepEqual(got, products)
			}

			needle := strings.ToLower(search)
			expected := []domain.Product{}
			for _, p := range products {
				if strings.Contains(strings.ToLower(p.Name), needle) ||
					strings.Contains(strings.ToLower(p.Price), needle) {
					expected = append(expected, p)
				}
			}

			if len(got) != len(expected) {
				t.Logf("FAIL: expected %d products, got %d", len(expected), len(got))
				return false
			}
			for i := range got {
				if !reflect.DeepEqual(got[i], expected[i]) {
					t.Logf("FAIL: position %d differs", i)
					return false
				}
			}
			return true
		},
		genProducts(),
		genSearch(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Partitioning is a non-overlapping split over the two known labels
func TestProperty_PartitionSplitsByCategory(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every product lands in its own partition or in none", prop.ForAll(
		func(products []domain.Product) bool {
			node, dotnet := Partition(products)

			if len(products) < len(node)+len(dotnet) {
				return false
			}

			var wantNode, wantDotnet []domain.Product
			for _, p := range products {
				switch p.Category {
				case domain.CategoryNode:
					wantNode = append(wantNode, p)
				case domain.CategoryDotNet:
					wantDotnet = append(wantDotnet, p)
				}
			}

			if len(node) != len(wantNode) || len(dotnet) != len(wantDotnet) {
				return false
			}
			for i := range node {
				if !reflect.DeepEqual(node[i], wantNode[i]) {
					return false
				}
			}
			for i := range dotnet {
				if !reflect.DeepEqual(dotnet[i], wantDotnet[i]) {
					return false
				}
			}
			return true
		},
		genProducts(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Concatenating every page reconstructs the partition
func TestProperty_PagesReconstructPartition(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("pages cover the partition in order without duplicates", prop.ForAll(
		func(products []domain.Product, pageSize int) bool {
			first := Paginate(products, 1, pageSize)

			wantPages := len(products) / pageSize
			if len(products)%pageSize != 0 {
				wantPages++
			}
			if first.TotalPages != wantPages {
				t.Logf("FAIL: expected %d pages, got %d", wantPages, first.TotalPages)
				return false
			}

			var all []domain.Product
			for cursor := 1; cursor <= first.TotalPages; cursor++ {
				page := Paginate(products, cursor, pageSize)
				if len(page.Products) == 0 || len(page.Products) > pageSize {
					return false
				}
				all = append(all, page.Products...)
			}

			if len(all) != len(products) {
				return false
			}
			for i := range all {
				if !reflect.DeepEqual(all[i], products[i]) {
					return false
				}
			}
			return true
		},
		genProducts(),
		gen.OneGenOf(gen.IntRange(1, 10), gen.IntRange(math.MaxInt-10, math.MaxInt)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// A cursor past the last page is empty but keeps the page count
func TestProperty_CursorBeyondLastPageIsEmpty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("out of range cursor yields an empty page", prop.ForAll(
		func(products []domain.Product, pageSize int, beyond int) bool {
			total := Paginate(products, 1, pageSize).TotalPages
			page := Paginate(products, total+beyond, pageSize)

			return len(page.Products) == 0 &&
				page.TotalPages == total &&
				page.Total == len(products) &&
				page.Cursor == total+beyond
		},
		genProducts(),
		gen.IntRange(1, 10),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestComputeView_Scenarios(t *testing.T) {
	alphaBeta := []domain.Product{
		{ID: 1, Name: "Alpha", Price: "10", Category: domain.CategoryNode},
		{ID: 2, Name: "Beta", Price: "20", Category: domain.CategoryDotNet},
	}

	tests := []struct {
		name           string
		products       []domain.Product
		search         string
		nodeCursor     int
		wantNode       []string
		wantDotnet     []string
		wantNodePages  int
		wantDotnetPage int
	}{
		{
			name:           "empty search lists both partitions",
			products:       alphaBeta,
			search:         "",
			nodeCursor:     1,
			wantNode:       []string{"Alpha"},
			wantDotnet:     []string{"Beta"},
			wantNodePages:  1,
			wantDotnetPage: 1,
		},
		{
			name:           "search matches on price",
			products:       alphaBeta,
			search:         "10",
			nodeCursor:     1,
			wantNode:       []string{"Alpha"},
			wantDotnet:     []string{},
			wantNodePages:  1,
			wantDotnetPage: 0,
		},
		{
			name:           "search ignores case on name",
			products:       alphaBeta,
			search:         "bEt",
			nodeCursor:     1,
			wantNode:       []string{},
			wantDotnet:     []string{"Beta"},
			wantNodePages:  0,
			wantDotnetPage: 1,
		},
		{
			name:           "second page of seven holds the seventh",
			products:       productsInCategory(domain.CategoryNode, 7),
			search:         "",
			nodeCursor:     2,
			wantNode:       []string{"Product 7"},
			wantDotnet:     []string{},
			wantNodePages:  2,
			wantDotnetPage: 0,
		},
		{
			name: "unknown category is listed nowhere",
			products: []domain.Product{
				{ID: 3, Name: "Gamma", Price: "30", Category: "Go Products"},
			},
			search:         "",
			nodeCursor:     1,
			wantNode:       []string{},
			wantDotnet:     []string{},
			wantNodePages:  0,
			wantDotnetPage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ComputeView(tt.products, tt.search, tt.nodeCursor, 1, DefaultPageSize)

			if got := names(view.Node.Products); !reflect.DeepEqual(got, tt.wantNode) {
				t.Errorf("node = %v, want %v", got, tt.wantNode)
			}
			if got := names(view.Dotnet.Products); !reflect.DeepEqual(got, tt.wantDotnet) {
				t.Errorf("dotnet = %v, want %v", got, tt.wantDotnet)
			}
			if view.Node.TotalPages != tt.wantNodePages {
				t.Errorf("node total pages = %d, want %d", view.Node.TotalPages, tt.wantNodePages)
			}
			if view.Dotnet.TotalPages != tt.wantDotnetPage {
				t.Errorf("dotnet total pages = %d, want %d", view.Dotnet.TotalPages, tt.wantDotnetPage)
			}
		})
	}
}

func TestComputeView_SearchWithoutCursorReset(t *testing.T) {
	products := productsInCategory(domain.CategoryNode, 7)
	state := NewQueryState().WithPage(domain.CategoryNode, 2)

	view := ComputeStateView(products, state, DefaultPageSize)
	if len(view.Node.Products) != 1 {
		t.Fatalf("expected 1 product on page 2, got %d", len(view.Node.Products))
	}

	// Changing the text while keeping the stale cursor lands past the last page.
	stale := state
	stale.SearchText = "Product 3"
	view = ComputeStateView(products, stale, DefaultPageSize)
	if len(view.Node.Products) != 0 {
		t.Errorf("expected an empty page for a stale cursor, got %d products", len(view.Node.Products))
	}
	if view.Node.TotalPages != 1 {
		t.Errorf("expected 1 total page, got %d", view.Node.TotalPages)
	}

	// Going through WithSearch resets the cursor.
	view = ComputeStateView(products, state.WithSearch("Product 3"), DefaultPageSize)
	if got := names(view.Node.Products); !reflect.DeepEqual(got, []string{"Product 3"}) {
		t.Errorf("expected [Product 3] after reset, got %v", got)
	}
}

func TestPaginate_NonPositivePageSizeUsesDefault(t *testing.T) {
	products := productsInCategory(domain.CategoryDotNet, 8)

	view := Paginate(products, 1, 0)
	if len(view.Products) != DefaultPageSize {
		t.Errorf("expected %d products, got %d", DefaultPageSize, len(view.Products))
	}
	if view.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", view.TotalPages)
	}
}

func TestPaginate_HugePageSize(t *testing.T) {
	products := productsInCategory(domain.CategoryNode, 3)

	view := Paginate(products, 1, math.MaxInt)
	if view.TotalPages != 1 {
		t.Errorf("expected 1 total page, got %d", view.TotalPages)
	}
	if len(view.Products) != 3 {
		t.Errorf("expected all 3 products on page 1, got %d", len(view.Products))
	}

	if empty := Paginate(nil, 1, math.MaxInt); empty.TotalPages != 0 {
		t.Errorf("expected 0 pages for an empty partition, got %d", empty.TotalPages)
	}
}

func TestPaginate_CursorBelowOne(t *testing.T) {
	products := productsInCategory(domain.CategoryNode, 3)

	for _, cursor := range []int{0, -1, -100} {
		view := Paginate(products, cursor, DefaultPageSize)
		if len(view.Products) != 0 {
			t.Errorf("cursor %d: expected empty page, got %d products", cursor, len(view.Products))
		}
		if view.TotalPages != 1 {
			t.Errorf("cursor %d: expected 1 total page, got %d", cursor, view.TotalPages)
		}
	}
}

func TestPartitionView_ShowPagination(t *testing.T) {
	if (PartitionView{TotalPages: 1}).ShowPagination() {
		t.Error("single page should not show pagination")
	}
	if (PartitionView{TotalPages: 0}).ShowPagination() {
		t.Error("empty partition should not show pagination")
	}
	if !(PartitionView{TotalPages: 2}).ShowPagination() {
		t.Error("two pages should show pagination")
	}
}
