package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvx-app/mvx/internal/accounts"
	"github.com/mvx-app/mvx/internal/formatter"
	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/services"
	"github.com/mvx-app/mvx/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
	DetailView
	FavoritesView
	LoginView
	RegisterView
	FilterView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	catalog services.Catalog
	session *session.Session
	bridge  *session.Bridge
	manager *accounts.Manager
	ledger  *accounts.Ledger

	width  int
	height int

	searchInput   textinput.Model
	filterInput   textinput.Model
	resultList    list.Model
	favoritesList list.Model
	detail        *models.MovieDetail
	returnView    ViewState
	authInputs    []textinput.Model
	authFocus     int
	status        string
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, catalog services.Catalog, sess *session.Session, bridge *session.Bridge, manager *accounts.Manager, ledger *accounts.Ledger) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search movies..."
	searchInput.Focus()

	filterInput := textinput.New()
	filterInput.Placeholder = "YYYY"
	filterInput.CharLimit = 4

	return &Model{
		ctx:         ctx,
		view:        SearchView,
		catalog:     catalog,
		session:     sess,
		bridge:      bridge,
		manager:     manager,
		ledger:      ledger,
		searchInput: searchInput,
		filterInput: filterInput,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the cursor blink for the search input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() != 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.favoritesList.Width() != 0 {
			m.favoritesList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		case LoginView, RegisterView:
			return m.handleAuthKeys(msg)
		case FilterView:
			return m.handleFilterKeys(msg)
		}

	case searchCompleteMsg:
		if err := m.session.Apply(msg.req, msg.result, msg.err); err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Search failed: %v", err))
			return m, nil
		}
		m.status = ""
		m.rebuildResultList()
		m.view = ResultsView
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not load movie: %v", msg.err))
			m.bridge.Drop()
			return m, nil
		}
		m.detail = msg.detail
		m.view = DetailView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case DetailView:
		return m.renderDetail()
	case FavoritesView:
		return m.renderFavorites()
	case LoginView:
		return m.renderAuth("Log In")
	case RegisterView:
		return m.renderAuth("Register")
	case FilterView:
		return m.renderFilter()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		req, ok := m.session.Begin(m.searchInput.Value(), 1)
		if !ok {
			return m, nil
		}
		m.status = styles.warn.Render("Searching...")
		return m, m.performSearch(req)
	case "esc":
		if m.session.HasSearched() {
			m.view = ResultsView
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	case "enter":
		item, ok := m.selectedResult()
		if !ok {
			return m, nil
		}
		m.bridge.Carry(m.session.Snapshot())
		m.returnView = ResultsView
		return m, m.fetchDetail(item.movie.ID)
	case "f":
		item, ok := m.selectedResult()
		if !ok {
			return m, nil
		}
		m.toggleFavorite(item.movie)
		m.rebuildResultList()
		return m, nil
	case "F":
		m.rebuildFavoritesList()
		m.returnView = ResultsView
		m.view = FavoritesView
		return m, nil
	case "n", "right":
		// page bounds are enforced here; the session trusts its caller
		if m.session.Page() < m.session.TotalPages() {
			req, _ := m.session.Begin(m.session.Query(), m.session.Page()+1)
			return m, m.performSearch(req)
		}
		return m, nil
	case "p", "left":
		if m.session.Page() > 1 {
			req, _ := m.session.Begin(m.session.Query(), m.session.Page()-1)
			return m, m.performSearch(req)
		}
		return m, nil
	case "s":
		m.session.SetSortKey(nextSortKey(m.session.SortKey()))
		if req, ok := m.session.BeginRefresh(); ok {
			return m, m.performSearch(req)
		}
		return m, nil
	case "y":
		m.filterInput.SetValue(m.session.YearFilter())
		m.filterInput.Focus()
		m.view = FilterView
		return m, textinput.Blink
	case "c":
		m.session.ResetFilters()
		if req, ok := m.session.BeginRefresh(); ok {
			return m, m.performSearch(req)
		}
		return m, nil
	case "L":
		return m.handleAccountKey()
	case "R":
		m.enterAuth(RegisterView)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if snap, ok := m.bridge.Take(); ok {
			m.session.Restore(snap)
			m.rebuildResultList()
		}
		m.detail = nil
		m.view = m.returnView
		return m, nil
	case "f":
		if m.detail != nil {
			m.toggleFavorite(m.detail.Movie)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.session.HasSearched() {
			m.view = ResultsView
		} else {
			m.view = SearchView
		}
		return m, nil
	case "enter":
		item, ok := m.selectedFavorite()
		if !ok {
			return m, nil
		}
		m.returnView = FavoritesView
		return m, m.fetchDetail(item.movie.ID)
	case "f":
		item, ok := m.selectedFavorite()
		if !ok {
			return m, nil
		}
		m.toggleFavorite(item.movie)
		m.rebuildFavoritesList()
		m.rebuildResultList()
		return m, nil
	}

	var cmd tea.Cmd
	m.favoritesList, cmd = m.favoritesList.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ResultsView
		return m, nil
	case "enter":
		year := strings.TrimSpace(m.filterInput.Value())
		if err := m.session.SetYear(year); err != nil {
			m.status = styles.err.Render("Enter a 4-digit year")
			return m, nil
		}
		m.status = ""
		m.view = ResultsView
		if req, ok := m.session.BeginRefresh(); ok {
			return m, m.performSearch(req)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = m.returnView
		return m, nil
	case "tab", "down":
		m.focusAuthInput(m.authFocus + 1)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.focusAuthInput(m.authFocus - 1)
		return m, textinput.Blink
	case "enter":
		if m.authFocus < len(m.authInputs)-1 {
			m.focusAuthInput(m.authFocus + 1)
			return m, textinput.Blink
		}
		m.submitAuth()
		return m, nil
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *Model) handleAccountKey() (tea.Model, tea.Cmd) {
	if user := m.manager.Current(); user != nil {
		m.manager.Logout()
		m.status = styles.warn.Render(fmt.Sprintf("Logged out %s", user.Name))
		m.rebuildResultList()
		return m, nil
	}
	m.enterAuth(LoginView)
	return m, textinput.Blink
}

func (m *Model) enterAuth(view ViewState) {
	m.returnView = m.view
	m.view = view

	placeholders := []string{"Email", "Password"}
	if view == RegisterView {
		placeholders = []string{"Name", "Email", "Password"}
	}

	m.authInputs = make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		input := textinput.New()
		input.Placeholder = placeholder
		if placeholder == "Password" {
			input.EchoMode = textinput.EchoPassword
		}
		m.authInputs[i] = input
	}
	m.authFocus = 0
	m.authInputs[0].Focus()
}

func (m *Model) focusAuthInput(i int) {
	if i < 0 {
		i = len(m.authInputs) - 1
	}
	if i >= len(m.authInputs) {
		i = 0
	}
	m.authInputs[m.authFocus].Blur()
	m.authFocus = i
	m.authInputs[m.authFocus].Focus()
}

func (m *Model) submitAuth() {
	values := make([]string, len(m.authInputs))
	for i, input := range m.authInputs {
		values[i] = input.Value()
	}

	var user *models.User
	var err error
	if m.view == RegisterView {
		user, err = m.manager.Register(values[0], values[1], values[2])
	} else {
		user, err = m.manager.Login(values[0], values[1])
	}

	if err != nil {
		m.status = styles.err.Render(err.Error())
		return
	}

	m.status = styles.ok.Render(fmt.Sprintf("Logged in as %s", user.Name))
	m.view = m.returnView
	m.rebuildResultList()
}

// toggleFavorite adds or removes movie from the current identity's favorites.
func (m *Model) toggleFavorite(movie models.Movie) {
	if m.manager.Current() == nil {
		m.status = styles.warn.Render("Log in to save favorites")
		return
	}

	if m.ledger.IsFavorite(movie.ID) {
		m.ledger.Remove(movie.ID)
		m.status = styles.warn.Render(fmt.Sprintf("Removed '%s' from favorites", movie.Title))
	} else {
		m.ledger.Add(movie)
		m.status = styles.ok.Render(fmt.Sprintf("Added '%s' to favorites", movie.Title))
	}
}

func (m *Model) selectedResult() (movieItem, bool) {
	item, ok := m.resultList.SelectedItem().(movieItem)
	return item, ok
}

func (m *Model) selectedFavorite() (movieItem, bool) {
	item, ok := m.favoritesList.SelectedItem().(movieItem)
	return item, ok
}

func (m *Model) rebuildResultList() {
	movies := m.session.Results()
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie, favorite: m.ledger.IsFavorite(movie.ID)}
	}

	m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.resultList.Title = fmt.Sprintf("Results for '%s' (page %d/%d)", m.session.Query(), m.session.Page(), m.session.TotalPages())
	m.resultList.SetShowHelp(false)
	m.resultList.SetSize(m.width-4, m.height-8)
}

func (m *Model) rebuildFavoritesList() {
	favorites := m.ledger.List()
	items := make([]list.Item, len(favorites))
	for i, movie := range favorites {
		items[i] = movieItem{movie: movie, favorite: true}
	}

	title := "Favorites"
	if user := m.manager.Current(); user != nil {
		title = fmt.Sprintf("Favorites (%s)", user.Name)
	}

	m.favoritesList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.favoritesList.Title = title
	m.favoritesList.SetShowHelp(false)
	m.favoritesList.SetSize(m.width-4, m.height-8)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	case FavoritesView:
		m.favoritesList, cmd = m.favoritesList.Update(msg)
	}
	return m, cmd
}

func (m *Model) performSearch(req session.Request) tea.Cmd {
	return func() tea.Msg {
		result, err := m.catalog.SearchMovies(m.ctx, req.Query, req.Page)
		return searchCompleteMsg{req: req, result: result, err: err}
	}
}

func (m *Model) fetchDetail(id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.MovieDetail(m.ctx, id)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Movie Search")

	var account string
	if user := m.manager.Current(); user != nil {
		account = styles.help.Render(fmt.Sprintf("Logged in as %s", user.Name))
	} else {
		account = styles.help.Render("Not logged in")
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s", title, account, m.searchInput.View(), m.status, helpView)
}

func (m *Model) renderResults() string {
	var filters []string
	if key := m.session.SortKey(); key != session.SortNone {
		filters = append(filters, fmt.Sprintf("sort: %s", key))
	}
	if year := m.session.YearFilter(); year != "" {
		filters = append(filters, fmt.Sprintf("year: %s", year))
	}

	filterLine := ""
	if len(filters) > 0 {
		filterLine = styles.help.Render(strings.Join(filters, "  "))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.search, m.keys.nextPage, m.keys.sort, m.keys.filter, m.keys.favorites, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", m.resultList.View(), filterLine, m.status, helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.err.Render("No movie loaded\n\nPress esc to go back")
	}

	title := styles.title.Render(m.detail.Title)
	body := string(formatter.DetailToText(m.detail))

	favLine := ""
	if m.ledger.IsFavorite(m.detail.ID) {
		favLine = styles.ok.Render("★ In your favorites")
	}

	helpKeys := []key.Binding{m.keys.favorite, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s", title, body, favLine, m.status, helpView)
}

func (m *Model) renderFavorites() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.favoritesList.View(), m.status, helpView)
}

func (m *Model) renderAuth(heading string) string {
	title := styles.title.Render(heading)

	var fields []string
	for _, input := range m.authInputs {
		fields = append(fields, input.View())
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, strings.Join(fields, "\n"), m.status, helpView)
}

func (m *Model) renderFilter() string {
	title := styles.title.Render("Filter by release year")

	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, m.filterInput.View(), m.status, helpView)
}

// nextSortKey cycles through the available sort orders.
func nextSortKey(key session.SortKey) session.SortKey {
	switch key {
	case session.SortNone:
		return session.SortTitleAsc
	case session.SortTitleAsc:
		return session.SortTitleDesc
	case session.SortTitleDesc:
		return session.SortYearNewest
	case session.SortYearNewest:
		return session.SortYearOldest
	default:
		return session.SortNone
	}
}
