package normalisers

import (
	"context"
	"sort"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw files to the normaliser registered for
// their format.
type Registry struct {
	byType map[domain.FileType]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[domain.FileType]driven.Normaliser),
	}
}

// Register adds a normaliser for each format it declares.
// A later registration for the same format replaces the earlier one.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ft := range n.FileTypes() {
		r.byType[ft] = n
	}
}

// Normalise dispatches to the matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawFile, report driven.ProgressFunc) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	n, ok := r.byType[raw.FileType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	return n.Normalise(ctx, raw, report)
}

// SupportedFileTypes returns all registered formats, sorted.
func (r *Registry) SupportedFileTypes() []domain.FileType {
	out := make([]domain.FileType, 0, len(r.byType))
	for ft := range r.byType {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
