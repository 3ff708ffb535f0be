// Package rules holds the rule management screen. Rules live only in memory
// for the lifetime of the Manager.
package rules

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/viewmodel"
)

const (
	MsgAdded   = "Rule added successfully"
	MsgUpdated = "Rule updated successfully"
	MsgDeleted = "Rule deleted successfully"
)

// API lists the backend rule catalog
type API interface {
	ListRules(ctx context.Context) ([]models.RuleBase, error)
}

// RuleInput is the editable part of a Rule
type RuleInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

func (in RuleInput) validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Please enter rule name")),
		validation.Field(&in.Description, validation.Required.Error("Please enter rule description")),
		validation.Field(&in.Content, validation.Required.Error("Please enter rule content")),
	)
	if errs, ok := err.(validation.Errors); ok {
		return domain.NewFieldError(errs)
	}
	return err
}

func (in RuleInput) trimmed() RuleInput {
	return RuleInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Content:     strings.TrimSpace(in.Content),
	}
}

// Manager owns the local rule list. Owned by a single goroutine.
type Manager struct {
	api     API
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	rules   []models.Rule
	catalog []models.RuleBase
	notice  *viewmodel.Notice
}

// NewManager creates a Manager seeded with the starter rule
func NewManager(api API, logger *slog.Logger) *Manager {
	m := &Manager{
		api:    api,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	m.seed()
	return m
}

func (m *Manager) seed() {
	ts := m.now()
	m.rules = []models.Rule{{
		ID:          m.newID(),
		Name:        "Basic Rule",
		Description: "A simple rule for testing",
		Content:     "This is the content of the rule",
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}}
}

// List returns the rules in insertion order
func (m *Manager) List() []models.Rule { return slices.Clone(m.rules) }

// Get finds a rule by id
func (m *Manager) Get(id string) (models.Rule, error) {
	i := m.find(id)
	if i < 0 {
		return models.Rule{}, fmt.Errorf("rule %q: %w", id, domain.ErrNotFound)
	}
	return m.rules[i], nil
}

// Add validates and appends a new rule
func (m *Manager) Add(in RuleInput) (models.Rule, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return models.Rule{}, err
	}

	ts := m.now()
	rule := models.Rule{
		ID:          m.newID(),
		Name:        in.Name,
		Description: in.Description,
		Content:     in.Content,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	m.rules = append(m.rules, rule)
	m.notice = &viewmodel.Notice{Level: viewmodel.LevelSuccess, Text: MsgAdded}
	m.logger.Debug("rule added", "rule_id", rule.ID)
	return rule, nil
}

// Update replaces the editable fields of a rule and bumps UpdatedAt
func (m *Manager) Update(id string, in RuleInput) (models.Rule, error) {
	i := m.find(id)
	if i < 0 {
		return models.Rule{}, fmt.Errorf("rule %q: %w", id, domain.ErrNotFound)
	}
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return models.Rule{}, err
	}

	rule := m.rules[i]
	rule.Name = in.Name
	rule.Description = in.Description
	rule.Content = in.Content
	rule.UpdatedAt = m.now()
	m.rules[i] = rule
	m.notice = &viewmodel.Notice{Level: viewmodel.LevelSuccess, Text: MsgUpdated}
	return rule, nil
}

// Delete removes a rule
func (m *Manager) Delete(id string) error {
	i := m.find(id)
	if i < 0 {
		return fmt.Errorf("rule %q: %w", id, domain.ErrNotFound)
	}
	m.rules = slices.Delete(m.rules, i, i+1)
	m.notice = &viewmodel.Notice{Level: viewmodel.LevelSuccess, Text: MsgDeleted}
	return nil
}

// Refresh loads the backend rule catalog for reference. Local rules are untouched.
func (m *Manager) Refresh(ctx context.Context) error {
	catalog, err := m.api.ListRules(ctx)
	if err != nil {
		m.logger.Error("error fetching rules", "error", err)
		return err
	}
	m.catalog = catalog
	return nil
}

// Catalog returns the last fetched backend rules
func (m *Manager) Catalog() []models.RuleBase { return slices.Clone(m.catalog) }

// Notice returns the outcome of the last change
func (m *Manager) Notice() *viewmodel.Notice { return m.notice }

func (m *Manager) find(id string) int {
	return slices.IndexFunc(m.rules, func(r models.Rule) bool { return r.ID == id })
}
