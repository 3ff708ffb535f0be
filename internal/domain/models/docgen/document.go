package docgen

import (
	"strconv"
	"time"
)

// DocumentStatus is the lifecycle status of a document revision.
// Values use the backend's wire spelling.
type DocumentStatus string

const (
	StatusActive   DocumentStatus = "ACTIVED"
	StatusPending  DocumentStatus = "PENDING"
	StatusInactive DocumentStatus = "INACTIVE"
	StatusSuccess  DocumentStatus = "SUCCESS"
)

// DefaultDocumentName is shown when a document has no name.
const DefaultDocumentName = "Untitled Document"

// CreatedAtLayout is the timestamp layout used for createdAt on the wire.
const CreatedAtLayout = "2006-01-02 15:04:05.0"

// Document is a stored document revision.
type Document struct {
	ID          string         `json:"id" db:"id"`
	LatestID    string         `json:"latest_id" db:"latest_id"`
	ParentID    *string        `json:"parent_id" db:"parent_id"` // NULL = graph root
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	CreatedBy   string         `json:"created_by" db:"created_by"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	Version     int            `json:"version" db:"version"`
	Status      DocumentStatus `json:"status" db:"status"`
	RuleID      string         `json:"rule_id" db:"rule_id"`
	Content     string         `json:"content" db:"content"` // Markdown content
}

// DocNode is one node of a document graph, nested as sent on the wire.
type DocNode struct {
	DocID        string    `json:"docId"`
	LatestID     string    `json:"latestId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    string    `json:"createdAt"`
	Version      string    `json:"version"`
	Status       string    `json:"status"`
	ParentID     string    `json:"parentId,omitempty"`
	RuleID       string    `json:"ruleId"`
	ChildrenList []DocNode `json:"childrenList"`
}

// NodeFromDocument converts a stored revision into a childless DocNode.
func NodeFromDocument(doc *Document) DocNode {
	node := DocNode{
		DocID:        doc.ID,
		LatestID:     doc.LatestID,
		Name:         doc.Name,
		Description:  doc.Description,
		CreatedBy:    doc.CreatedBy,
		CreatedAt:    doc.CreatedAt.Format(CreatedAtLayout),
		Version:      strconv.Itoa(doc.Version),
		Status:       string(doc.Status),
		RuleID:       doc.RuleID,
		ChildrenList: []DocNode{},
	}
	if doc.ParentID != nil {
		node.ParentID = *doc.ParentID
	}
	return node
}
