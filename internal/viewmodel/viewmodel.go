// Package viewmodel turns catalogs and a session ledger into the ordered,
// annotated cards the UI renders.
package viewmodel

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/logger"
)

// CatalogSource serves the catalog of a category. A category that failed
// to load returns an empty catalog and the failure. A nil catalog is read
// as empty.
type CatalogSource interface {
	Catalog(c domain.Category) (*domain.Catalog, error)
}

// ViewMode selects how much of a record a card shows.
type ViewMode string

const (
	ViewDetailed ViewMode = "detailed"
	ViewCompact  ViewMode = "compact"
)

// ParseViewMode defaults to the detailed view.
func ParseViewMode(s string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewCompact)) {
		return ViewCompact
	}
	return ViewDetailed
}

// Request is one render of one category.
type Request struct {
	Category domain.Category
	Search   string
	Types    []string
	Sort     domain.SortOrder
	View     ViewMode
}

// DisplayCard is one rendered record.
type DisplayCard struct {
	Key         domain.FavoriteKey `json:"key"`
	Category    domain.Category    `json:"category"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Links       []domain.Link      `json:"links"`
	ExtraFields []domain.Field     `json:"extra_fields,omitempty"`
	IsFavorited bool               `json:"is_favorited"`
}

// Page is the result of a render.
type Page struct {
	Category    domain.Category `json:"category"`
	Label       string          `json:"label"`
	Cards       []DisplayCard   `json:"cards"`
	Total       int             `json:"total"`
	Notices     []string        `json:"notices,omitempty"`
	TypeOptions []string        `json:"type_options,omitempty"`

	// Relocation is set when favorites moved to other rows since they
	// were stamped. Render never touches the ledger; the caller applies
	// it with Ledger.CompareAndRestore and persists on success.
	Relocation *Relocation `json:"-"`
}

// Relocation rewrites a ledger from one state to another.
type Relocation struct {
	From domain.LedgerState
	To   domain.LedgerState
}

// Model renders pages from a catalog source.
type Model struct {
	source CatalogSource
	logger logger.Logger
}

// New creates a view model.
func New(src CatalogSource, log logger.Logger) *Model {
	return &Model{source: src, logger: log}
}

// Render builds the page for req from a snapshot of ledger. ledger may be
// nil for a session without favorites.
func (m *Model) Render(ctx context.Context, req Request, ledger *domain.Ledger) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	state := domain.LedgerState{}
	if ledger != nil {
		state = ledger.Snapshot()
	}

	if req.Category == domain.CategoryFavorites {
		return m.renderFavorites(req, state), nil
	}
	if !req.Category.IsSheet() {
		return Page{}, fmt.Errorf("unknown category: %q", req.Category)
	}

	page := Page{Category: req.Category, Label: req.Category.Label(), Cards: []DisplayCard{}}

	cat, err := m.source.Catalog(req.Category)
	if err != nil {
		page.Notices = append(page.Notices, loadNotice(req.Category, err))
	}

	fav := m.reconcile(state, req.Category)
	page.Relocation = fav.relocation(state)

	records := domain.Search(cat.List(), req.Search)
	if req.Category == domain.CategoryDataSources {
		page.TypeOptions = domain.TypeOptions(cat.List())
		records = domain.FilterByType(records, req.Types)
	}
	records = domain.Sort(records, req.Sort)

	for _, r := range records {
		_, favorited := fav.records[r.Key()]
		page.Cards = append(page.Cards, buildCard(r, req.View, favorited))
	}
	page.Total = len(page.Cards)

	return page, nil
}

// renderFavorites shows every resolved favorite from its own category's
// catalog, grouped in category order.
func (m *Model) renderFavorites(req Request, state domain.LedgerState) Page {
	page := Page{Category: domain.CategoryFavorites, Label: domain.CategoryFavorites.Label(), Cards: []DisplayCard{}}
	if len(state.Entries) == 0 {
		return page
	}

	fav := m.reconcile(state, "")
	page.Notices = fav.notices
	page.Relocation = fav.relocation(state)

	groups := make(map[domain.Category][]domain.Record)
	for _, e := range fav.to.Entries {
		if r, ok := fav.records[domain.FavoriteKey{Category: e.Category, Row: e.Row}]; ok {
			groups[e.Category] = append(groups[e.Category], r)
		}
	}

	for _, c := range domain.SheetCategories {
		records := domain.Search(groups[c], req.Search)
		records = domain.Sort(records, req.Sort)
		for _, r := range records {
			page.Cards = append(page.Cards, buildCard(r, req.View, true))
		}
	}
	page.Total = len(page.Cards)

	return page
}

// favoriteSet is a ledger state resolved against the current catalogs.
type favoriteSet struct {
	to      domain.LedgerState
	records map[domain.FavoriteKey]domain.Record // resolved entries by their current key
	notices []string
}

func (f favoriteSet) relocation(from domain.LedgerState) *Relocation {
	if f.to.Equal(from) {
		return nil
	}
	return &Relocation{From: from, To: f.to}
}

// reconcile resolves every entry of state, restricted to category only
// unless only is empty. Entries outside the restriction are kept as they
// are.
//
// Every entry is resolved against the fingerprints it had before this
// call, then the resulting state is built in one step, so entries that
// trade rows keep both favorites. An entry whose record cannot be found
// keeps its row and fingerprint unless a resolved favorite now occupies
// that row.
func (m *Model) reconcile(state domain.LedgerState, only domain.Category) favoriteSet {
	set := favoriteSet{records: make(map[domain.FavoriteKey]domain.Record)}

	byCategory := make(map[domain.Category][]domain.LedgerEntry)
	for _, e := range state.Entries {
		if only != "" && e.Category != only {
			set.to.Entries = append(set.to.Entries, e)
			continue
		}
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	for _, c := range domain.SheetCategories {
		entries := byCategory[c]
		if len(entries) == 0 {
			continue
		}

		cat, err := m.source.Catalog(c)
		if err != nil {
			set.notices = append(set.notices, loadNotice(c, err))
			set.to.Entries = append(set.to.Entries, entries...)
			continue
		}

		claimed := make(map[int]bool)
		var stale []domain.LedgerEntry
		for _, e := range entries {
			r, ok := resolve(cat, e)
			if !ok {
				stale = append(stale, e)
				continue
			}
			if claimed[r.Row()] {
				continue // two entries for the same record
			}
			claimed[r.Row()] = true
			set.records[r.Key()] = r
			set.to.Entries = append(set.to.Entries, domain.LedgerEntry{
				Category:    c,
				Row:         r.Row(),
				Fingerprint: r.Fingerprint(),
			})
		}

		for _, e := range stale {
			set.notices = append(set.notices,
				fmt.Sprintf("A saved favorite in %s (row %d) no longer matches any resource and was skipped.",
					c.Label(), e.Row+1))
			m.logger.Debug("stale favorite",
				logger.String("category", string(c)),
				logger.Int("row", e.Row))
			if !claimed[e.Row] {
				set.to.Entries = append(set.to.Entries, e)
			}
		}
	}

	set.to = set.to.Sorted()
	return set
}

// resolve finds the record a favorite points at. An unstamped entry is
// trusted at its row. A stamped entry whose row now holds another record
// is looked up by fingerprint.
func resolve(cat *domain.Catalog, e domain.LedgerEntry) (domain.Record, bool) {
	r, ok := cat.At(e.Row)
	if ok && (e.Fingerprint == "" || r.Fingerprint() == e.Fingerprint) {
		return r, true
	}
	return cat.FindByFingerprint(e.Fingerprint)
}

// ToggleFavorite flips a record in the ledger and stamps its fingerprint
// when it becomes a favorite. The category's favorites are relocated
// first so the toggle applies to the record the user sees. Rows outside
// the loaded catalog can still be removed but not added.
func (m *Model) ToggleFavorite(ledger *domain.Ledger, c domain.Category, row int) (bool, error) {
	if !c.IsSheet() {
		return false, fmt.Errorf("cannot favorite in category %q", c)
	}

	state := ledger.Snapshot()
	if rel := m.reconcile(state, c).relocation(state); rel != nil {
		ledger.CompareAndRestore(rel.From, rel.To)
	}

	if ledger.IsFavorited(c, row) {
		return ledger.Toggle(c, row), nil
	}

	cat, _ := m.source.Catalog(c)
	r, ok := cat.At(row)
	if !ok {
		return false, fmt.Errorf("no resource at row %d in %s", row, c.Label())
	}
	on := ledger.Toggle(c, row)
	ledger.Stamp(r.Key(), r.Fingerprint())
	return on, nil
}

func buildCard(r domain.Record, view ViewMode, favorited bool) DisplayCard {
	card := DisplayCard{
		Key:         r.Key(),
		Category:    r.Category(),
		Title:       domain.TitleOf(r),
		Description: domain.DescriptionOf(r),
		IsFavorited: favorited,
	}
	if view == ViewCompact {
		card.Links = domain.LinksOf(r, domain.LinksFirst)
	} else {
		card.Links = domain.LinksOf(r, domain.LinksAll)
		card.ExtraFields = domain.ExtraFieldsOf(r, card.Links)
	}
	if card.Links == nil {
		card.Links = []domain.Link{}
	}
	return card
}

func loadNotice(c domain.Category, err error) string {
	return fmt.Sprintf("Could not load %s: %v", c.Label(), err)
}
