package persist

import (
	"errors"
	"fmt"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/stores"
)

// LayoutSink receives imported layouts. The engine satisfies it.
type LayoutSink interface {
	SaveLayout(l layout.Layout) error
	LayoutOrder() []string
	SetLayoutOrder(ids []string) error
}

// ImportResult reports what an import did.
type ImportResult struct {
	// Imported is the list of layout ids saved
	Imported []string `json:"imported"`

	// Rejected is the list of entries skipped, with reasons
	Rejected []stores.Rejection `json:"rejected"`
}

// Import loads the bundle at path and saves each valid layout into sink.
// Layouts the sink refuses as invalid are reported as rejections; any other
// sink error aborts the import. A bundle order is placed ahead of the
// existing order.
func (m *BundleManager) Import(path string, sink LayoutSink) (*ImportResult, error) {
	b, rejected, err := m.Load(path)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{Rejected: rejected}
	for _, l := range b.Layouts {
		err := sink.SaveLayout(l)
		var verr *layout.ValidationError
		switch {
		case errors.As(err, &verr):
			res.Rejected = append(res.Rejected, stores.Rejection{Index: -1, ID: l.ID, Result: verr.Result})
			continue
		case err != nil:
			return res, fmt.Errorf("failed to import layout %s: %w", l.ID, err)
		}
		res.Imported = append(res.Imported, l.ID)
	}

	if len(b.LayoutOrder) > 0 {
		order := append([]string{}, b.LayoutOrder...)
		order = append(order, sink.LayoutOrder()...)
		if err := sink.SetLayoutOrder(order); err != nil {
			return res, fmt.Errorf("failed to import layout order: %w", err)
		}
	}
	return res, nil
}
