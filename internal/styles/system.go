package styles

import (
	"context"
	"io"

	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

// System defines the public contract for style profile operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[StyleProfile], error)

	Find(ctx context.Context, id string) (*StyleProfile, error)
	Create(ctx context.Context, cmd CreateCommand) (*StyleProfile, error)
	Update(ctx context.Context, id string, cmd UpdateCommand) (*StyleProfile, error)
	Delete(ctx context.Context, id string) error

	// Validate checks a decoded JSON document against the style profile schema.
	Validate(doc any) ValidationResult

	// Export writes a canonical JSON snapshot of the profile to blob storage.
	Export(ctx context.Context, id string) (*Export, error)
	// Snapshot streams the stored export. The caller must close the reader.
	Snapshot(ctx context.Context, id string) (io.ReadCloser, error)
}
