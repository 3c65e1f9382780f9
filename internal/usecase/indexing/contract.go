package indexing

import (
	"context"

	domcat "github.com/kailas-cloud/coursesearch/internal/domain/catalog"
	domdoc "github.com/kailas-cloud/coursesearch/internal/domain/document"
	"github.com/kailas-cloud/coursesearch/internal/index"
)

// CatalogLoader reads a complete catalog snapshot.
type CatalogLoader interface {
	Load(ctx context.Context) (domcat.Catalog, error)
}

// IndexBuilder embeds documents and assembles an index.
type IndexBuilder interface {
	Build(ctx context.Context, docs []domdoc.Document) (*index.Index, error)
}

// Publisher makes a built index visible to queries.
type Publisher interface {
	Swap(idx *index.Index) *index.Index
}
