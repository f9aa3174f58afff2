package transport

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"product-showcase/internal/catalog"
	"product-showcase/internal/domain"
	"product-showcase/internal/listing"
	"product-showcase/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Query parameters of the home page. Cursors are 1-based.
const (
	paramSearch     = "q"
	paramNodePage   = "node_page"
	paramDotnetPage = "dotnet_page"
)

// Paginator shape: two pages at each end, three around the cursor
const (
	pagerMargin = 2
	pagerAround = 3
)

const defaultImage = "/assets/Global Square.jpeg"

// PageMeta feeds the title and OG tags of a page
type PageMeta struct {
	Title       string
	Description string
	Image       string
}

type pageLink struct {
	Number int
	Href   string
	Active bool
	Break  bool
}

type pagerData struct {
	Visible      bool
	HasPrevious  bool
	HasNext      bool
	PreviousHref string
	NextHref     string
	Pages        []pageLink
}

type sectionData struct {
	Title     string
	EmptyText string
	Products  []domain.Product
	Pager     pagerData
}

type homeData struct {
	Meta        PageMeta
	Search      string
	FetchFailed bool
	Sections    []sectionData
}

type detailData struct {
	Meta    PageMeta
	Product *domain.Product
}

// PageHandler renders the storefront HTML pages
type PageHandler struct {
	showcase  service.ShowcaseService
	templates *template.Template
	logger    *zap.Logger
}

// NewPageHandler creates a new PageHandler with the embedded templates
func NewPageHandler(showcase service.ShowcaseService, logger *zap.Logger) (*PageHandler, error) {
	templates, err := template.New("pages").
		Funcs(template.FuncMap{
			"deref": func(f *float64) float64 { return *f },
		}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		showcase:  showcase,
		templates: templates,
		logger:    logger,
	}, nil
}

// RegisterRoutes registers the page routes
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/products/productDetail", h.DetailByQuery)
	r.Get("/products/{id}", h.DetailByPath)
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	state := StateFromQuery(r.URL.Query())
	page := h.showcase.Home(fetchContext(r), state)

	data := homeData{
		Meta: PageMeta{
			Title:       "Product Showcase",
			Description: "Browse our products",
			Image:       defaultImage,
		},
		Search:      state.SearchText,
		FetchFailed: page.FetchFailed,
		Sections: []sectionData{
			newSection(domain.CategoryNode, "No Node.js products found.", page.View.Node, state),
			newSection(domain.CategoryDotNet, "No .NET products found.", page.View.Dotnet, state),
		},
	}

	h.render(w, http.StatusOK, "home.html", data)
}

// DetailByQuery handles GET /products/productDetail?id={id}
func (h *PageHandler) DetailByQuery(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, r.URL.Query().Get("id"))
}

// DetailByPath handles GET /products/{id}
func (h *PageHandler) DetailByPath(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, chi.URLParam(r, "id"))
}

func (h *PageHandler) detail(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		h.logger.Debug("Non-numeric product id on detail page", zap.String("id", rawID))
		h.renderNotFound(w)
		return
	}

	page := h.showcase.Detail(fetchContext(r), id)
	if page.NotFound {
		h.renderNotFound(w)
		return
	}

	h.render(w, http.StatusOK, "detail.html", detailData{
		Meta: PageMeta{
			Title:       page.Product.Name,
			Description: page.Product.Price,
			Image:       page.Product.Image,
		},
		Product: page.Product,
	})
}

func (h *PageHandler) renderNotFound(w http.ResponseWriter) {
	h.render(w, http.StatusNotFound, "detail.html", detailData{
		Meta: PageMeta{
			Title:       "Product Not Found",
			Description: "The requested product does not exist.",
			Image:       defaultImage,
		},
	})
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("Failed to render page", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fetchContext carries the visitor address into the catalog requests of a page
func fetchContext(r *http.Request) context.Context {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return catalog.WithClientIP(r.Context(), host)
}

// StateFromQuery reads the listing state from home page query parameters.
// Missing or non-numeric cursors mean page 1.
func StateFromQuery(q url.Values) listing.QueryState {
	return listing.NewQueryState().
		WithSearch(q.Get(paramSearch)).
		WithPage(domain.CategoryNode, parsePage(q.Get(paramNodePage))).
		WithPage(domain.CategoryDotNet, parsePage(q.Get(paramDotnetPage)))
}

// PageHref builds the home page link that moves one partition to page,
// keeping the search text and the other partition's cursor.
func PageHref(state listing.QueryState, category string, page int) string {
	state = state.WithPage(category, page)

	q := url.Values{}
	if state.SearchText != "" {
		q.Set(paramSearch, state.SearchText)
	}
	q.Set(paramNodePage, strconv.Itoa(state.NodeCursor))
	q.Set(paramDotnetPage, strconv.Itoa(state.DotnetCursor))

	return "/?" + q.Encode()
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

func newSection(category, emptyText string, view listing.PartitionView, state listing.QueryState) sectionData {
	return sectionData{
		Title:     category,
		EmptyText: emptyText,
		Products:  view.Products,
		Pager:     newPager(category, view.Pagination(), state),
	}
}

func newPager(category string, p listing.Pagination, state listing.QueryState) pagerData {
	pager := pagerData{
		Visible:     p.Visible(),
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
	if !pager.Visible {
		return pager
	}

	if pager.HasPrevious {
		pager.PreviousHref = PageHref(state, category, p.Previous())
	}
	if pager.HasNext {
		pager.NextHref = PageHref(state, category, p.Next())
	}

	for _, n := range p.Window(pagerMargin, pagerAround) {
		if n == 0 {
			pager.Pages = append(pager.Pages, pageLink{Break: true})
			continue
		}
		pager.Pages = append(pager.Pages, pageLink{
			Number: n,
			Href:   PageHref(state, category, n),
			Active: n == p.Cursor,
		})
	}

	return pager
}
