package doclist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"docstudio/internal/apiclient"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/viewmodel"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// pagedAPI serves total synthetic rows and records every request
type pagedAPI struct {
	total int
	err   error
	calls []apiclient.Page
}

func (p *pagedAPI) FetchPromptHistory(_ context.Context, page apiclient.Page) (*apiclient.HistoryPage, error) {
	p.calls = append(p.calls, page)
	if p.err != nil {
		return nil, p.err
	}
	var rows []models.PromptDocument
	for i := (page.Page - 1) * page.PageSize; i < page.Page*page.PageSize && i < p.total; i++ {
		rows = append(rows, models.PromptDocument{DocID: fmt.Sprintf("doc-%d", i), Status: "ACTIVED"})
	}
	return &apiclient.HistoryPage{Entries: rows, Total: p.total}, nil
}

func newTestList(api API) *List {
	return New(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadFirstPage(t *testing.T) {
	api := &pagedAPI{total: 25}
	l := newTestList(api)

	require.NoError(t, l.Load(context.Background()))
	s := l.State()
	assert.Equal(t, []apiclient.Page{{Page: 1, PageSize: 10}}, api.calls)
	assert.Len(t, s.Rows, 10)
	assert.Equal(t, 25, s.Total)
	assert.Equal(t, 3, s.PageCount())
	assert.False(t, s.Loading)
}

func TestChangePageReplacesRows(t *testing.T) {
	api := &pagedAPI{total: 25}
	l := newTestList(api)
	require.NoError(t, l.Load(context.Background()))

	api.total = 14
	require.NoError(t, l.ChangePage(context.Background(), 2, 10))

	s := l.State()
	require.Len(t, api.calls, 2)
	assert.Equal(t, apiclient.Page{Page: 2, PageSize: 10}, api.calls[1])
	require.Len(t, s.Rows, 4)
	assert.Equal(t, "doc-10", s.Rows[0].DocID)
	assert.Equal(t, 14, s.Total)
	assert.Equal(t, 2, s.Page)
}

func TestChangePageKeepsSizeWhenZero(t *testing.T) {
	api := &pagedAPI{total: 100}
	l := newTestList(api)
	require.NoError(t, l.ChangePage(context.Background(), 1, 20))
	require.NoError(t, l.ChangePage(context.Background(), 3, 0))

	assert.Equal(t, apiclient.Page{Page: 3, PageSize: 20}, api.calls[1])
	assert.Equal(t, "doc-40", l.State().Rows[0].DocID)
}

func TestRevisitingPageRefetches(t *testing.T) {
	api := &pagedAPI{total: 30}
	l := newTestList(api)
	require.NoError(t, l.Load(context.Background()))
	require.NoError(t, l.ChangePage(context.Background(), 2, 0))
	require.NoError(t, l.ChangePage(context.Background(), 1, 0))

	assert.Len(t, api.calls, 3)
}

func TestLoadFailureKeepsRows(t *testing.T) {
	api := &pagedAPI{total: 12}
	l := newTestList(api)
	require.NoError(t, l.Load(context.Background()))

	api.err = errors.New("down")
	assert.Error(t, l.ChangePage(context.Background(), 2, 0))

	s := l.State()
	assert.Len(t, s.Rows, 10)
	assert.Equal(t, MsgLoadFailed, s.Notice.Text)
	assert.False(t, s.Loading)
}

func TestEditRoute(t *testing.T) {
	assert.Equal(t, viewmodel.Route{DocID: "d7", ParentDocID: "d7"}, EditRoute("d7"))
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status, label, color string
	}{
		{"ACTIVED", "Active", "green"},
		{"PENDING", "Pending", "orange"},
		{"INACTIVE", "Inactive", "red"},
		{"SUCCESS", "SUCCESS", "default"},
		{"", "", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.label, StatusLabel(tt.status))
			assert.Equal(t, tt.color, StatusColor(tt.status))
		})
	}
}

func TestShortRuleID(t *testing.T) {
	assert.Equal(t, "-", ShortRuleID(""))
	assert.Equal(t, "rule-basic", ShortRuleID("rule-basic"))
	assert.Equal(t, "rule-api-r...", ShortRuleID("rule-api-reference"))
}
