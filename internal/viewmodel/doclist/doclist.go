// Package doclist holds the paginated prompt history screen.
package doclist

import (
	"context"
	"log/slog"

	"docstudio/internal/apiclient"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/viewmodel"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10

	MsgLoadFailed = "Failed to load documents"
)

// API is the part of the backend client the list uses
type API interface {
	FetchPromptHistory(ctx context.Context, page apiclient.Page) (*apiclient.HistoryPage, error)
}

// State is the page being displayed
type State struct {
	Page     int
	PageSize int
	Rows     []models.PromptDocument
	Total    int
	Loading  bool
	Notice   *viewmodel.Notice
}

// List drives State against the backend. Every page change refetches;
// nothing is cached between pages.
type List struct {
	api    API
	logger *slog.Logger
	state  State
}

func New(api API, logger *slog.Logger) *List {
	return &List{
		api:    api,
		logger: logger,
		state:  State{Page: DefaultPage, PageSize: DefaultPageSize},
	}
}

func (l *List) State() State { return l.state }

// Load fetches the current page
func (l *List) Load(ctx context.Context) error {
	return l.fetch(ctx, l.state.Page, l.state.PageSize)
}

// ChangePage moves to page. A pageSize of zero keeps the current size.
func (l *List) ChangePage(ctx context.Context, page, pageSize int) error {
	if pageSize <= 0 {
		pageSize = l.state.PageSize
	}
	if page < 1 {
		page = 1
	}
	return l.fetch(ctx, page, pageSize)
}

func (l *List) fetch(ctx context.Context, page, pageSize int) error {
	l.state.Page, l.state.PageSize = page, pageSize
	l.state.Loading = true
	defer func() { l.state.Loading = false }()

	result, err := l.api.FetchPromptHistory(ctx, apiclient.Page{Page: page, PageSize: pageSize})
	if err != nil {
		l.logger.Error("failed to load prompt history", "page", page, "page_size", pageSize, "error", err)
		l.state.Notice = &viewmodel.Notice{Level: viewmodel.LevelError, Text: MsgLoadFailed}
		return err
	}

	l.state.Rows = result.Entries
	l.state.Total = result.Total
	l.state.Notice = nil
	return nil
}

// PageCount is the number of pages for the current total
func (s State) PageCount() int {
	if s.PageSize <= 0 || s.Total <= 0 {
		return 0
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

// EditRoute opens a history entry in the editor with its own graph
func EditRoute(docID string) viewmodel.Route {
	return viewmodel.Route{DocID: docID, ParentDocID: docID}
}

// StatusLabel maps a wire status to display text. Unknown values pass through.
func StatusLabel(status string) string {
	switch models.DocumentStatus(status) {
	case models.StatusActive:
		return "Active"
	case models.StatusPending:
		return "Pending"
	case models.StatusInactive:
		return "Inactive"
	default:
		return status
	}
}

// StatusColor is the tag colour for a wire status
func StatusColor(status string) string {
	switch models.DocumentStatus(status) {
	case models.StatusActive:
		return "green"
	case models.StatusPending:
		return "orange"
	case models.StatusInactive:
		return "red"
	default:
		return "default"
	}
}

// ShortRuleID abbreviates rule ids longer than ten characters
func ShortRuleID(ruleID string) string {
	if ruleID == "" {
		return "-"
	}
	r := []rune(ruleID)
	if len(r) > 10 {
		return string(r[:10]) + "..."
	}
	return ruleID
}
