package editor

import (
	"context"
	"errors"
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

type fakeAPI struct {
	docs       map[string]apiclient.DocumentContent
	graph      *models.DocNode
	fetchErr   error
	saveErr    error
	fetched    []string
	graphCalls []string
	saved      []apiclient.UpdateInput
}

func (f *fakeAPI) FetchDocument(_ context.Context, docID string) (*apiclient.DocumentContent, error) {
	f.fetched = append(f.fetched, docID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	doc := f.docs[docID]
	return &doc, nil
}

func (f *fakeAPI) FetchDocumentGraph(_ context.Context, docID string) (*models.DocNode, error) {
	f.graphCalls = append(f.graphCalls, docID)
	if f.graph == nil {
		return nil, errors.New("no graph")
	}
	return f.graph, nil
}

func (f *fakeAPI) UpdateDocument(_ context.Context, in apiclient.UpdateInput) error {
	f.saved = append(f.saved, in)
	return f.saveErr
}

func newTestEditor(api *fakeAPI) *Editor {
	return New(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleAPI() *fakeAPI {
	return &fakeAPI{
		docs: map[string]apiclient.DocumentContent{
			"root":   {DocData: "# Root", Name: "Root Document"},
			"c1":     {DocData: "# Child 1", Name: "Child 1"},
			"c2":     {DocData: "# Child 2"},
			"doc-42": {DocData: "# Forty two"},
		},
		graph: sampleGraph(),
	}
}

func TestOpen_LoadsBufferAndGraph(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)

	e.Open(context.Background(), viewmodel.Route{DocID: "c1", ParentDocID: "root"})

	s := e.State()
	assert.Equal(t, "# Child 1", s.Buffer)
	assert.Equal(t, "Child 1", s.Name)
	assert.Equal(t, "c1", s.CurrentDocID)
	assert.Equal(t, []string{"root"}, api.graphCalls)
	assert.Equal(t, 5, s.Tree.Len())
}

func TestOpen_GraphDefaultsToDocID(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)

	e.Open(context.Background(), viewmodel.Route{DocID: "c2"})
	assert.Equal(t, []string{"c2"}, api.graphCalls)
}

func TestFetchKeepsNameWhenResponseOmitsIt(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)

	e.Open(context.Background(), viewmodel.Route{DocID: "doc-42"})
	s := e.State()
	assert.Equal(t, "# Forty two", s.Buffer)
	assert.Equal(t, DefaultName, s.Name)

	e.CommitRename("Release notes")
	e.Select(context.Background(), "c2")
	s = e.State()
	assert.Equal(t, "# Child 2", s.Buffer)
	assert.Equal(t, "Release notes", s.Name)

	e.Select(context.Background(), "c1")
	assert.Equal(t, "Child 1", e.State().Name)
}

func TestSelect_SkipsFetchForLoadedNode(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)
	e.Open(context.Background(), viewmodel.Route{DocID: "root", ParentDocID: "root"})
	require.Equal(t, []string{"root"}, api.fetched)

	e.SetBuffer("unsaved edit")
	e.Select(context.Background(), "root")
	assert.Equal(t, []string{"root"}, api.fetched)
	assert.Equal(t, "unsaved edit", e.State().Buffer)
	assert.Equal(t, []string{"root"}, e.State().SelectedKeys)

	e.Select(context.Background(), "c1")
	e.Select(context.Background(), "root")
	assert.Equal(t, []string{"root", "c1", "root"}, api.fetched)
}

func TestExpand_LoadsWithoutSelecting(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)
	e.Open(context.Background(), viewmodel.Route{DocID: "root"})
	e.Select(context.Background(), "c1")

	e.Expand(context.Background(), "c2")
	s := e.State()
	assert.Equal(t, "c2", s.CurrentDocID)
	assert.Equal(t, "# Child 2", s.Buffer)
	assert.Equal(t, []string{"c1"}, s.SelectedKeys)
}

func TestFetchFailureShowsNotice(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)
	e.Open(context.Background(), viewmodel.Route{DocID: "root"})

	api.fetchErr = errors.New("down")
	e.Select(context.Background(), "c1")

	s := e.State()
	assert.Equal(t, "# Root", s.Buffer)
	require.NotNil(t, s.Notice)
	assert.Equal(t, MsgLoadFailed, s.Notice.Text)
}

func TestRename(t *testing.T) {
	e := newTestEditor(sampleAPI())

	e.BeginRename()
	assert.True(t, e.State().Renaming)
	e.CommitRename("  Guide v2  ")
	assert.Equal(t, "Guide v2", e.State().Name)
	assert.False(t, e.State().Renaming)

	e.CommitRename("   ")
	assert.Equal(t, DefaultName, e.State().Name)

	e.BeginRename()
	e.CancelRename()
	assert.False(t, e.State().Renaming)
	assert.Equal(t, DefaultName, e.State().Name)
}

func TestSave(t *testing.T) {
	api := sampleAPI()
	e := newTestEditor(api)
	e.Open(context.Background(), viewmodel.Route{DocID: "c1", ParentDocID: "root"})

	e.SetBuffer("  \n ")
	assert.False(t, e.CanSave())
	require.NoError(t, e.Save(context.Background()))
	assert.Empty(t, api.saved)

	e.SetBuffer("# Edited")
	require.True(t, e.CanSave())
	require.NoError(t, e.Save(context.Background()))
	require.Len(t, api.saved, 1)
	assert.Equal(t, apiclient.UpdateInput{DocID: "c1", DocData: "# Edited", Name: "Child 1"}, api.saved[0])
	assert.Equal(t, MsgSaved, e.State().Notice.Text)

	api.saveErr = errors.New("500")
	assert.Error(t, e.Save(context.Background()))
	assert.Equal(t, MsgSaveFailed, e.State().Notice.Text)
	assert.Equal(t, "# Edited", e.State().Buffer)
}

func TestToggles(t *testing.T) {
	e := newTestEditor(sampleAPI())
	e.ToggleEditMode()
	e.ToggleTree()
	e.ToggleLeftPanel()
	s := e.State()
	assert.False(t, s.EditMode)
	assert.False(t, s.TreeVisible)
	assert.False(t, s.LeftPanel)
}
