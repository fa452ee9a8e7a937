package planner

import (
	"encoding/json"
	"fmt"

	"github.com/hamiltonia/zoned-sub004/internal/stores"
	"github.com/hamiltonia/zoned-sub004/internal/templates"
)

// MigrationPlan represents a plan to migrate a layouts file to a new
// catalog version.
type MigrationPlan struct {
	// FromVersion is the installed catalog version
	FromVersion int `json:"from_version"`

	// ToVersion is the catalog version being migrated to
	ToVersion int `json:"to_version"`

	// Operations is the ordered list of decisions the plan makes
	Operations []Operation `json:"operations"`

	// File is the layouts file the plan produces
	File *stores.LayoutsFile `json:"file"`
}

// Operation represents a single migration decision.
type Operation struct {
	// Type is the operation type: "add_template", "keep_user", "drop_derived", "drop_order_ref"
	Type string `json:"type"`

	// LayoutID is the layout the operation concerns
	LayoutID string `json:"layout_id"`

	// Reason is a human-readable explanation of the decision
	Reason string `json:"reason"`
}

// Operation type constants
const (
	OpAddTemplate  = "add_template"
	OpKeepUser     = "keep_user"
	OpDropDerived  = "drop_derived"
	OpDropOrderRef = "drop_order_ref"
)

// NewMigrationPlan creates a new empty MigrationPlan.
func NewMigrationPlan(from, to int) *MigrationPlan {
	return &MigrationPlan{
		FromVersion: from,
		ToVersion:   to,
		Operations:  []Operation{},
		File:        &stores.LayoutsFile{Layouts: []json.RawMessage{}, LayoutOrder: []string{}},
	}
}

// AddOperation adds an operation to the plan.
func (p *MigrationPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// IDs returns the layout ids of all operations of the given type, in order.
func (p *MigrationPlan) IDs(opType string) []string {
	ids := []string{}
	for _, op := range p.Operations {
		if op.Type == opType {
			ids = append(ids, op.LayoutID)
		}
	}
	return ids
}

// Added returns the ids of templates the plan writes.
func (p *MigrationPlan) Added() []string { return p.IDs(OpAddTemplate) }

// Kept returns the ids of user-authored layouts the plan preserves.
func (p *MigrationPlan) Kept() []string { return p.IDs(OpKeepUser) }

// Dropped returns the ids of template-derived layouts the plan removes.
func (p *MigrationPlan) Dropped() []string { return p.IDs(OpDropDerived) }

// PlanMigration computes the rewrite of file for catalog. Entries whose id
// is a template id are dropped and replaced by the catalog's templates;
// every other entry is kept verbatim, malformed ones included. The order
// keeps every id except template ids the catalog no longer defines.
func PlanMigration(file *stores.LayoutsFile, catalog *templates.Catalog, fromVersion int) (*MigrationPlan, error) {
	if file == nil {
		return nil, fmt.Errorf("no layouts file to migrate")
	}
	plan := NewMigrationPlan(fromVersion, catalog.Version())

	for _, tmpl := range catalog.All() {
		raw, err := json.Marshal(tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to encode template %s: %w", tmpl.ID, err)
		}
		plan.File.Layouts = append(plan.File.Layouts, raw)
		plan.AddOperation(Operation{
			Type:     OpAddTemplate,
			LayoutID: tmpl.ID,
			Reason:   fmt.Sprintf("catalog version %d", catalog.Version()),
		})
	}

	for _, raw := range file.Layouts {
		id := stores.EntryID(raw)
		if templates.IsTemplateID(id) {
			reason := "superseded by catalog"
			if !catalog.Has(id) {
				reason = "template removed from catalog"
			}
			plan.AddOperation(Operation{Type: OpDropDerived, LayoutID: id, Reason: reason})
			continue
		}

		plan.File.Layouts = append(plan.File.Layouts, raw)
		plan.AddOperation(Operation{Type: OpKeepUser, LayoutID: id, Reason: "user-authored"})
	}

	for _, id := range file.LayoutOrder {
		if templates.IsTemplateID(id) && !catalog.Has(id) {
			plan.AddOperation(Operation{Type: OpDropOrderRef, LayoutID: id, Reason: "template no longer in catalog"})
			continue
		}
		plan.File.LayoutOrder = append(plan.File.LayoutOrder, id)
	}

	return plan, nil
}
