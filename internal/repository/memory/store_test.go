package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
)

func strPtr(s string) *string { return &s }

func TestDocumentGraph(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()

	require.NoError(t, docs.Create(ctx, &models.Document{ID: "root", Name: "Root"}))
	require.NoError(t, docs.Create(ctx, &models.Document{ID: "a", ParentID: strPtr("root")}))
	require.NoError(t, docs.Create(ctx, &models.Document{ID: "b", ParentID: strPtr("root")}))
	require.NoError(t, docs.Create(ctx, &models.Document{ID: "a1", ParentID: strPtr("a")}))

	graph, err := docs.ListGraph(ctx, "root")
	require.NoError(t, err)
	ids := make([]string, len(graph))
	for i, d := range graph {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"root", "a", "b", "a1"}, ids)

	require.NoError(t, docs.SetLatest(ctx, "root", "a1"))
	for _, id := range ids {
		doc, err := docs.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "a1", doc.LatestID)
	}
}

func TestDocumentCreateErrors(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()

	err := docs.Create(ctx, &models.Document{ID: "x", ParentID: strPtr("missing")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, docs.Create(ctx, &models.Document{ID: "y"}))
	err = docs.Create(ctx, &models.Document{ID: "y"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = docs.GetByID(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestHistoryPagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Documents().Create(ctx, &models.Document{ID: "d"}))

	for i := 0; i < 5; i++ {
		rec := &models.PromptRecord{DocID: "d", Description: string(rune('a' + i)), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.History().Append(ctx, rec))
	}

	page, total, err := store.History().List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[0].Description)
	assert.Equal(t, "d", page[1].Description)

	page, _, err = store.History().List(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].Description)

	page, _, err = store.History().List(ctx, -3, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[0].Description)

	page, total, err = store.History().List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, page)

	err = store.History().Append(ctx, &models.PromptRecord{DocID: "missing"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRuleUpsertKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	clock := time.UnixMilli(1000)
	store.now = func() time.Time { return clock }

	rules := store.Rules()
	require.NoError(t, rules.Upsert(ctx, &models.RuleBase{RuleID: "r", RuleName: "B"}))
	clock = time.UnixMilli(2000)
	require.NoError(t, rules.Upsert(ctx, &models.RuleBase{RuleID: "r", RuleName: "B2"}))
	require.NoError(t, rules.Upsert(ctx, &models.RuleBase{RuleID: "q", RuleName: "A"}))

	got, err := rules.GetByID(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.CreatedAt)
	assert.Equal(t, int64(2000), got.UpdatedAt)

	list, err := rules.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "q", list[0].RuleID)

	assert.Error(t, rules.Upsert(ctx, &models.RuleBase{}))
}

func TestExecTxRevertsOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	docs, history := store.Documents(), store.History()
	require.NoError(t, docs.Create(ctx, &models.Document{ID: "root"}))
	require.NoError(t, store.Rules().Upsert(ctx, &models.RuleBase{RuleID: "r", RuleName: "Before"}))

	boom := errors.New("boom")
	err := store.ExecTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, docs.Create(txCtx, &models.Document{ID: "child", ParentID: strPtr("root")}))
		require.NoError(t, docs.SetLatest(txCtx, "root", "child"))
		require.NoError(t, history.Append(txCtx, &models.PromptRecord{DocID: "child"}))
		require.NoError(t, store.Rules().Upsert(txCtx, &models.RuleBase{RuleID: "r", RuleName: "After"}))
		require.NoError(t, store.Rules().Upsert(txCtx, &models.RuleBase{RuleID: "new", RuleName: "New"}))
		// outside the transaction; must survive the rollback
		require.NoError(t, docs.Create(ctx, &models.Document{ID: "other"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = docs.GetByID(ctx, "child")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = docs.GetByID(ctx, "other")
	assert.NoError(t, err)

	root, err := docs.GetByID(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "root", root.LatestID)
	graph, err := docs.ListGraph(ctx, "root")
	require.NoError(t, err)
	assert.Len(t, graph, 1)

	_, total, err := history.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	rule, err := store.Rules().GetByID(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "Before", rule.RuleName)
	_, err = store.Rules().GetByID(ctx, "new")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecTxKeepsWritesOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.ExecTx(ctx, func(txCtx context.Context) error {
		return store.Documents().Create(txCtx, &models.Document{ID: "kept"})
	}))
	_, err := store.Documents().GetByID(ctx, "kept")
	assert.NoError(t, err)
}
