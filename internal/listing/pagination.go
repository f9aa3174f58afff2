package listing

// Pagination is the single 1-based paging contract shared by both partitions.
type Pagination struct {
	Cursor     int
	TotalPages int
}

// Visible reports whether controls are rendered at all
func (p Pagination) Visible() bool {
	return p.TotalPages > 1
}

func (p Pagination) HasPrevious() bool {
	return p.Cursor > 1
}

func (p Pagination) HasNext() bool {
	return p.Cursor < p.TotalPages
}

func (p Pagination) Previous() int {
	return p.Cursor - 1
}

func (p Pagination) Next() int {
	return p.Cursor + 1
}

// Window returns the page numbers to render: the first and last margin pages
// plus a run of around pages centred on the cursor. A 0 marks a gap.
func (p Pagination) Window(margin, around int) []int {
	if p.TotalPages <= 0 {
		return nil
	}

	if p.TotalPages <= 2*margin+around {
		pages := make([]int, 0, p.TotalPages)
		for i := 1; i <= p.TotalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	half := around / 2
	lo := p.Cursor - half
	hi := lo + around - 1

	pages := []int{}
	for i := 1; i <= p.TotalPages; i++ {
		if i <= margin || i > p.TotalPages-margin || (i >= lo && i <= hi) {
			pages = append(pages, i)
			continue
		}
		if len(pages) > 0 && pages[len(pages)-1] != 0 {
			pages = append(pages, 0)
		}
	}

	return pages
}
