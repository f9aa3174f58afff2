// Package listing computes the paged, filtered home page view over a product
// snapshot. Everything here is a pure function of its arguments.
package listing

import (
	"strings"

	"product-showcase/internal/domain"
)

// DefaultPageSize is the number of products shown per page in each partition
const DefaultPageSize = 6

// PartitionView is the ready-to-render output for one category partition
type PartitionView struct {
	Products   []domain.Product `json:"products"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	Cursor     int              `json:"cursor"`
}

// ShowPagination reports whether pagination controls should be rendered
func (v PartitionView) ShowPagination() bool {
	return v.TotalPages > 1
}

// Pagination returns the pagination contract for this partition
func (v PartitionView) Pagination() Pagination {
	return Pagination{Cursor: v.Cursor, TotalPages: v.TotalPages}
}

// View holds both partitions of the home page
type View struct {
	Node   PartitionView `json:"node"`
	Dotnet PartitionView `json:"dotnet"`
}

// ComputeView filters, partitions and paginates the snapshot.
// Cursors are 1-based and are not clamped: resetting them after a search
// change is the caller's job (see QueryState.WithSearch).
func ComputeView(all []domain.Product, searchText string, nodeCursor, dotnetCursor, pageSize int) View {
	node, dotnet := Partition(Filter(all, searchText))

	return View{
		Node:   Paginate(node, nodeCursor, pageSize),
		Dotnet: Paginate(dotnet, dotnetCursor, pageSize),
	}
}

// ComputeStateView is ComputeView driven by a QueryState
func ComputeStateView(all []domain.Product, state QueryState, pageSize int) View {
	return ComputeView(all, state.SearchText, state.NodeCursor, state.DotnetCursor, pageSize)
}

// Filter keeps the products whose name or price contains searchText,
// ignoring case. A blank search returns all unchanged.
func Filter(all []domain.Product, searchText string) []domain.Product {
	if strings.TrimSpace(searchText) == "" {
		return all
	}

	needle := strings.ToLower(searchText)
	filtered := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if Matches(p, needle) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// Matches reports whether a lowercased needle occurs in the product's name or price
func Matches(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Price), needle)
}

// Partition splits products into the Node.js and .NET partitions,
// preserving order. Other categories are dropped.
func Partition(products []domain.Product) (node, dotnet []domain.Product) {
	node = []domain.Product{}
	dotnet = []domain.Product{}

	for _, p := range products {
		switch p.Category {
		case domain.CategoryNode:
			node = append(node, p)
		case domain.CategoryDotNet:
			dotnet = append(dotnet, p)
		}
	}

	return node, dotnet
}

// Paginate returns the visible slice for a 1-based cursor. Out-of-range
// cursors yield an empty slice alongside the real page count.
func Paginate(items []domain.Product, cursor, pageSize int) PartitionView {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	view := PartitionView{
		Products: []domain.Product{},
		Total:    total,
		Cursor:   cursor,
	}
	if total > 0 {
		view.TotalPages = (total-1)/pageSize + 1
	}

	if cursor < 1 || cursor > view.TotalPages {
		return view
	}

	start := (cursor - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	view.Products = items[start:end:end]

	return view
}
