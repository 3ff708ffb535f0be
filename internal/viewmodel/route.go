// Package viewmodel holds the pieces shared by the screen view-models.
package viewmodel

// Route addresses the editor screen: the document to load and the root of
// the graph shown next to it.
type Route struct {
	DocID       string
	ParentDocID string
}

// GraphRoot returns the id whose graph should be displayed
func (r Route) GraphRoot() string {
	if r.ParentDocID != "" {
		return r.ParentDocID
	}
	return r.DocID
}

// Level is the severity of a Notice
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a one-line message for the user
type Notice struct {
	Level Level
	Text  string
}
