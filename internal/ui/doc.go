// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the movie catalog:
//  1. [SearchView] : Type a query and submit it to the catalog
//  2. [ResultsView] : Browse the result page with sorting and year filtering
//  3. [DetailView] : Full movie detail, with the search state carried across and restored on return
//  4. [FavoritesView] : The logged-in user's saved movies
//  5. [LoginView] / [RegisterView] : Establish an identity for favorites
//  6. [FilterView] : Prompt for a release-year filter
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Catalog lookups run as commands and come back as messages; a response that is
// older than the latest issued request is discarded by the session, so rapid
// re-searching never shows stale results.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
