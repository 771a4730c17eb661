// file: internal/resources/assets.go
package resources

import (
	"context"

	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// AssetIndexURI is the registered URI of the asset index resource. Reads may
// append a ?type=<assetType> suffix to filter the listing.
const AssetIndexURI = "app://assets/index"

// assetIndexSnapshot is the payload of an asset index read.
type assetIndexSnapshot struct {
	Assets        []host.Asset `json:"assets"`
	TotalAssets   int          `json:"totalAssets"`
	ReturnedCount int          `json:"returnedCount"`
	TypeFilter    string       `json:"typeFilter,omitempty"`
}

// AssetIndexResource serves a count-capped listing of the host asset index.
type AssetIndexResource struct {
	index      host.AssetIndex
	maxEntries int
	logger     logging.Logger
}

// NewAssetIndexResource creates the asset index resource. Listings return at
// most maxEntries assets.
func NewAssetIndexResource(index host.AssetIndex, maxEntries int, logger logging.Logger) *AssetIndexResource {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &AssetIndexResource{
		index:      index,
		maxEntries: maxEntries,
		logger:     logger.WithField("resource", "asset_index"),
	}
}

// URI implements mcp.Resource.
func (r *AssetIndexResource) URI() string { return AssetIndexURI }

// Name implements mcp.Resource.
func (r *AssetIndexResource) Name() string { return "Asset Index" }

// Description implements mcp.Resource.
func (r *AssetIndexResource) Description() string {
	return "Listing of indexed assets, optionally filtered with ?type=<assetType>."
}

// MimeType implements mcp.Resource.
func (r *AssetIndexResource) MimeType() string { return mcp.DefaultMimeType }

// Read implements mcp.Resource. The raw URI arrives with any query suffix
// intact; only the type filter is recognized here.
func (r *AssetIndexResource) Read(ctx context.Context, rawURI string) (*mcp.ResourceReadResult, error) {
	typeFilter := querySuffix(rawURI).Get("type")

	assets, err := r.index.Assets(ctx, typeFilter)
	if err != nil {
		return nil, err
	}

	total := len(assets)
	if len(assets) > r.maxEntries {
		assets = assets[:r.maxEntries]
	}

	return mcp.NewResourceJSONResult(&assetIndexSnapshot{
		Assets:        assets,
		TotalAssets:   total,
		ReturnedCount: len(assets),
		TypeFilter:    typeFilter,
	})
}
