package listing

import "product-showcase/internal/domain"

// QueryState is the per-session input of the listing engine. It is a plain
// value owned by the presentation layer.
type QueryState struct {
	SearchText   string `json:"search_text"`
	NodeCursor   int    `json:"node_cursor"`
	DotnetCursor int    `json:"dotnet_cursor"`
}

// NewQueryState returns an empty search positioned on the first page of both partitions
func NewQueryState() QueryState {
	return QueryState{NodeCursor: 1, DotnetCursor: 1}
}

// WithSearch sets the search text. A changed text resets both cursors to 1.
func (s QueryState) WithSearch(text string) QueryState {
	if text == s.SearchText {
		return s
	}

	return QueryState{SearchText: text, NodeCursor: 1, DotnetCursor: 1}
}

// WithPage moves the cursor of one partition, leaving the other untouched.
// Unknown partition labels leave the state unchanged.
func (s QueryState) WithPage(category string, page int) QueryState {
	switch category {
	case domain.CategoryNode:
		s.NodeCursor = page
	case domain.CategoryDotNet:
		s.DotnetCursor = page
	}

	return s
}
