package docgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
	"docstudio/internal/repository/memory"
)

func TestUpdateDocument_WithoutDocIDCreatesRoot(t *testing.T) {
	store := memory.NewStore()
	svc := NewDocumentService(store.Documents(), store, testLogger())

	doc, err := svc.UpdateDocument(context.Background(), &docgenSvc.UpdateDocumentRequest{DocData: "# Hello", Name: "  ", Author: "admin"})
	require.NoError(t, err)
	assert.Nil(t, doc.ParentID)
	assert.Equal(t, models.DefaultDocumentName, doc.Name)
	assert.Equal(t, 0, doc.Version)
	assert.Equal(t, "admin", doc.CreatedBy)
}

func TestUpdateDocument_CreatesChildRevision(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewDocumentService(store.Documents(), store, testLogger())

	root := &models.Document{Name: "Root", Version: 0, RuleID: "rule1", Description: "desc", Content: "v0", Status: models.StatusActive}
	require.NoError(t, store.Documents().Create(ctx, root))

	v1, err := svc.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{DocID: root.ID, DocData: "v1", Name: "Renamed", Author: "bob"})
	require.NoError(t, err)
	require.NotNil(t, v1.ParentID)
	assert.Equal(t, root.ID, *v1.ParentID)
	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, "rule1", v1.RuleID)
	assert.Equal(t, "bob", v1.CreatedBy)

	v2, err := svc.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{DocID: v1.ID, DocData: "v2", Name: "Renamed", Author: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)

	for _, id := range []string{root.ID, v1.ID, v2.ID} {
		doc, err := svc.GetDocument(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, v2.ID, doc.LatestID, "latest pointer of %s", id)
	}
}

func TestUpdateDocument_Errors(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewDocumentService(store.Documents(), store, testLogger())

	_, err := svc.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{DocData: "   ", Author: "admin"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{DocData: "x", Author: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateDocument(ctx, &docgenSvc.UpdateDocumentRequest{DocID: "missing", DocData: "x", Author: "admin"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetDocument(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
