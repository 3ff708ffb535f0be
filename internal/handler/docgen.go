package handler

import (
	"log/slog"
	"net/http"

	models "docstudio/internal/domain/models/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
	"docstudio/internal/httputil"
)

// DocgenHandler serves the documentation-generation routes.
// Every route is a POST whose body embeds a requestId envelope.
type DocgenHandler struct {
	rules      docgenSvc.RuleService
	generation docgenSvc.GenerationService
	documents  docgenSvc.DocumentService
	graph      docgenSvc.GraphService
	history    docgenSvc.HistoryService
	// defaultAuthor is credited for anonymous requests
	defaultAuthor string
	logger        *slog.Logger
}

// NewDocgenHandler creates a new docgen handler
func NewDocgenHandler(
	rules docgenSvc.RuleService,
	generation docgenSvc.GenerationService,
	documents docgenSvc.DocumentService,
	graph docgenSvc.GraphService,
	history docgenSvc.HistoryService,
	defaultAuthor string,
	logger *slog.Logger,
) *DocgenHandler {
	return &DocgenHandler{
		rules:         rules,
		generation:    generation,
		documents:     documents,
		graph:         graph,
		history:       history,
		defaultAuthor: defaultAuthor,
		logger:        logger,
	}
}

// Register mounts every route on mux
func (h *DocgenHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+models.RouteRuleBase, h.ListRules)
	mux.HandleFunc("POST "+models.RouteGenerateDocs, h.GenerateDocs)
	mux.HandleFunc("POST "+models.RoutePromptHistory, h.ListPromptHistory)
	mux.HandleFunc("POST "+models.RouteGetDocs, h.GetDocument)
	mux.HandleFunc("POST "+models.RouteUpdateDocs, h.UpdateDocument)
	mux.HandleFunc("POST "+models.RouteGraphDoc, h.GetGraph)
}

// ListRules returns the rule catalog
// POST /get-rule-base
func (h *DocgenHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	var req models.RuleBaseRequest
	if !parseBody(w, r, h.logger, &req) {
		return
	}

	rules, err := h.rules.ListRules(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.RuleBaseResponse{Data: rules})
}

// GenerateDocs generates documentation from a request/response sample
// POST /generate-docs
func (h *DocgenHandler) GenerateDocs(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateDocsRequest
	if !parseBody(w, r, h.logger, &req) {
		return
	}

	h.logger.Debug("generate-docs received",
		"request_id", req.RequestID,
		"agent", req.Config.Name,
		"rule_id", req.Config.RuleID,
	)

	result, err := h.generation.Generate(r.Context(), &docgenSvc.GenerateRequest{
		Input:  req.Data,
		Config: req.Config,
		Author: httputil.Author(r, h.defaultAuthor),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.GenerateDocsResponse{
		DocData: result.DocData,
		DocID:   result.DocID,
	})
}

// ListPromptHistory pages prompt history; offset is the zero-based page index
// POST /get-prompt-history
func (h *DocgenHandler) ListPromptHistory(w http.ResponseWriter, r *http.Request) {
	var req models.PromptHistoryRequest
	if !parseBody(w, r, h.logger, &req) {
		return
	}

	rows, total, err := h.history.ListHistory(r.Context(), req.Offset, req.Limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.PromptHistoryResponse{
		HistoryList: rows,
		Total:       total,
	})
}

// GetDocument returns a document's markdown and name
// POST /get-docs
func (h *DocgenHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	var req models.GetDocRequest
	if !parseBody(w, r, h.logger, &req) {
		return
	}

	doc, err := h.documents.GetDocument(r.Context(), req.DocID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.GetDocResponse{
		DocData: doc.Content,
		Name:    doc.Name,
	})
}

// UpdateDocument saves edited content as a new revision
// POST /update-docs
func (h *DocgenHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDocRequest
	if !parseBody(w, r, h.logger, &req) {
		return
	}

	doc, err := h.documents.UpdateDocument(r.Context(), &docgenSvc.UpdateDocumentRequest{
		DocID:   req.DocID,
		DocData: req.DocData,
		Name:    req.Name,
		Author:  httputil.Author(r, h.defaultAuthor),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("update-docs stored", "request_id", req.RequestID, "doc_id", doc.ID)
	httputil.RespondJSON(w, http.StatusOK, struct{}{})
}

// GetGraph returns the revision tree containing a document
// POST /get-graph-doc
func (h *DocgenHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	var req models.GraphDocRequest
	if !parseBody(w, r, h.logger, &req) {
		return
	}

	node, err := h.graph.GetGraph(r.Context(), req.DocID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.GraphDocResponse{Node: *node})
}
