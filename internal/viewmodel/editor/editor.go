// Package editor holds the document editor screen state.
package editor

import (
	"context"
	"log/slog"
	"strings"

	"docstudio/internal/apiclient"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/viewmodel"
)

const (
	DefaultName = "Untitled Document"

	MsgLoadFailed = "Failed to load document"
	MsgSaved      = "Document saved successfully!"
	MsgSaveFailed = "Failed to save document. Please try again."
)

// API is the part of the backend client the editor uses
type API interface {
	FetchDocument(ctx context.Context, docID string) (*apiclient.DocumentContent, error)
	FetchDocumentGraph(ctx context.Context, docID string) (*models.DocNode, error)
	UpdateDocument(ctx context.Context, in apiclient.UpdateInput) error
}

// State is everything the editor screen displays
type State struct {
	Route viewmodel.Route
	// CurrentDocID is the node the buffer belongs to
	CurrentDocID string
	// LoadedDocID is the node whose content was last fetched successfully
	LoadedDocID  string
	Buffer       string
	Name         string
	Renaming     bool
	Tree         *Tree
	SelectedKeys []string
	EditMode     bool
	TreeVisible  bool
	LeftPanel    bool
	Notice       *viewmodel.Notice
}

// Editor drives State against the backend. Owned by a single goroutine.
type Editor struct {
	api    API
	logger *slog.Logger
	state  State
}

func New(api API, logger *slog.Logger) *Editor {
	return &Editor{
		api:    api,
		logger: logger,
		state:  initialState(viewmodel.Route{}),
	}
}

func initialState(route viewmodel.Route) State {
	return State{
		Route:        route,
		CurrentDocID: route.DocID,
		Name:         DefaultName,
		Tree:         NewTree(nil),
		EditMode:     true,
		TreeVisible:  true,
		LeftPanel:    true,
	}
}

// State returns the current screen state
func (e *Editor) State() State { return e.state }

// Open loads the routed document and the graph around it
func (e *Editor) Open(ctx context.Context, route viewmodel.Route) {
	e.state = initialState(route)

	if route.DocID != "" {
		e.load(ctx, route.DocID)
	}

	root := route.GraphRoot()
	if root == "" {
		return
	}
	node, err := e.api.FetchDocumentGraph(ctx, root)
	if err != nil {
		e.logger.Error("failed to fetch document graph", "doc_id", root, "error", err)
		return
	}
	e.state.Tree = NewTree(node)
}

// Select makes a tree node current, fetching its content unless it is
// already loaded.
func (e *Editor) Select(ctx context.Context, docID string) {
	if docID == "" {
		return
	}
	e.state.SelectedKeys = []string{docID}
	e.activate(ctx, docID)
}

// Expand is an expand/collapse interaction. It loads the node like Select
// but leaves the selection alone.
func (e *Editor) Expand(ctx context.Context, docID string) {
	if docID == "" {
		return
	}
	e.activate(ctx, docID)
}

func (e *Editor) activate(ctx context.Context, docID string) {
	e.state.CurrentDocID = docID
	if docID == e.state.LoadedDocID {
		return
	}
	e.load(ctx, docID)
}

func (e *Editor) load(ctx context.Context, docID string) {
	doc, err := e.api.FetchDocument(ctx, docID)
	if err != nil {
		e.logger.Error("failed to fetch document", "doc_id", docID, "error", err)
		e.state.Notice = &viewmodel.Notice{Level: viewmodel.LevelError, Text: MsgLoadFailed}
		return
	}
	e.state.Buffer = doc.DocData
	if doc.Name != "" {
		e.state.Name = doc.Name
	}
	e.state.LoadedDocID = docID
}

// SetBuffer replaces the markdown being edited
func (e *Editor) SetBuffer(content string) { e.state.Buffer = content }

func (e *Editor) BeginRename() { e.state.Renaming = true }

// CommitRename sets the display name; blank falls back to DefaultName
func (e *Editor) CommitRename(value string) {
	name := strings.TrimSpace(value)
	if name == "" {
		name = DefaultName
	}
	e.state.Name = name
	e.state.Renaming = false
}

func (e *Editor) CancelRename() { e.state.Renaming = false }

// CanSave reports whether the buffer has content
func (e *Editor) CanSave() bool { return strings.TrimSpace(e.state.Buffer) != "" }

// Save stores the buffer as a new revision of the current document.
// It does nothing when CanSave is false.
func (e *Editor) Save(ctx context.Context) error {
	if !e.CanSave() {
		return nil
	}
	err := e.api.UpdateDocument(ctx, apiclient.UpdateInput{
		DocID:   e.state.CurrentDocID,
		DocData: e.state.Buffer,
		Name:    e.state.Name,
	})
	if err != nil {
		e.logger.Error("failed to save document", "doc_id", e.state.CurrentDocID, "error", err)
		e.state.Notice = &viewmodel.Notice{Level: viewmodel.LevelError, Text: MsgSaveFailed}
		return err
	}
	e.state.Notice = &viewmodel.Notice{Level: viewmodel.LevelSuccess, Text: MsgSaved}
	return nil
}

func (e *Editor) ToggleEditMode()  { e.state.EditMode = !e.state.EditMode }
func (e *Editor) ToggleTree()      { e.state.TreeVisible = !e.state.TreeVisible }
func (e *Editor) ToggleLeftPanel() { e.state.LeftPanel = !e.state.LeftPanel }
