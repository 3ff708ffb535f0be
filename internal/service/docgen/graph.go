package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
)

// graphService implements the GraphService interface
type graphService struct {
	docRepo docgenRepo.DocumentRepository
	logger  *slog.Logger
}

// NewGraphService creates a new graph service
func NewGraphService(docRepo docgenRepo.DocumentRepository, logger *slog.Logger) docgenSvc.GraphService {
	return &graphService{
		docRepo: docRepo,
		logger:  logger,
	}
}

// GetGraph builds the nested revision tree that contains docID
func (s *graphService) GetGraph(ctx context.Context, docID string) (*models.DocNode, error) {
	if strings.TrimSpace(docID) == "" {
		return nil, fmt.Errorf("%w: docId is required", domain.ErrValidation)
	}

	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	root, err := findRoot(ctx, s.docRepo, doc)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListGraph(ctx, root.ID)
	if err != nil {
		return nil, err
	}

	tree := buildTree(root.ID, docs)
	if tree == nil {
		return nil, fmt.Errorf("document %s: %w", root.ID, domain.ErrNotFound)
	}

	s.logger.Debug("document graph built",
		"doc_id", docID,
		"root_id", root.ID,
		"node_count", len(docs),
	)
	return tree, nil
}

// buildTree nests a flat revision list under rootID.
// Children keep the order of docs.
func buildTree(rootID string, docs []models.Document) *models.DocNode {
	// First pass: create all nodes
	nodes := make(map[string]models.DocNode, len(docs))
	for i := range docs {
		nodes[docs[i].ID] = models.NodeFromDocument(&docs[i])
	}

	// Second pass: record child ids per parent
	childIDs := make(map[string][]string)
	for _, doc := range docs {
		if doc.ParentID == nil {
			continue
		}
		if _, exists := nodes[*doc.ParentID]; exists {
			childIDs[*doc.ParentID] = append(childIDs[*doc.ParentID], doc.ID)
		}
	}

	if _, ok := nodes[rootID]; !ok {
		return nil
	}

	// Third pass: materialize the nested value tree from the root
	var build func(id string) models.DocNode
	build = func(id string) models.DocNode {
		node := nodes[id]
		for _, childID := range childIDs[id] {
			node.ChildrenList = append(node.ChildrenList, build(childID))
		}
		return node
	}

	root := build(rootID)
	return &root
}
