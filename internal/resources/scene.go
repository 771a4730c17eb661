// file: internal/resources/scene.go
package resources

import (
	"context"

	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// SceneGraphURI is the registered URI of the scene graph resource.
const SceneGraphURI = "app://scene/graph"

// sceneNodeView is the serialized form of one scene node. Children is
// omitted entirely on nodes at the depth boundary.
type sceneNodeView struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	Children []*sceneNodeView `json:"children,omitempty"`
}

// sceneGraphSnapshot is the payload of a scene graph read.
type sceneGraphSnapshot struct {
	Root      *sceneNodeView `json:"root"`
	MaxDepth  int            `json:"maxDepth"`
	NodeCount int            `json:"nodeCount"`
	Truncated bool           `json:"truncated"`
}

// SceneGraphResource serves a depth-capped snapshot of the live scene graph.
type SceneGraphResource struct {
	querier  host.SceneQuerier
	maxDepth int
	logger   logging.Logger
}

// NewSceneGraphResource creates the scene graph resource. Traversal is capped
// at maxDepth levels counted from the root.
func NewSceneGraphResource(querier host.SceneQuerier, maxDepth int, logger logging.Logger) *SceneGraphResource {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &SceneGraphResource{
		querier:  querier,
		maxDepth: maxDepth,
		logger:   logger.WithField("resource", "scene_graph"),
	}
}

// URI implements mcp.Resource.
func (r *SceneGraphResource) URI() string { return SceneGraphURI }

// Name implements mcp.Resource.
func (r *SceneGraphResource) Name() string { return "Scene Graph" }

// Description implements mcp.Resource.
func (r *SceneGraphResource) Description() string {
	return "Depth-capped snapshot of the current scene graph."
}

// MimeType implements mcp.Resource.
func (r *SceneGraphResource) MimeType() string { return mcp.DefaultMimeType }

// Read implements mcp.Resource.
func (r *SceneGraphResource) Read(ctx context.Context, _ string) (*mcp.ResourceReadResult, error) {
	root, err := r.querier.SceneRoot(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &sceneGraphSnapshot{MaxDepth: r.maxDepth}
	snapshot.Root = r.truncate(root, 1, snapshot)
	return mcp.NewResourceJSONResult(snapshot)
}

// truncate copies the subtree rooted at n, stopping at the depth boundary.
// Nodes at the boundary keep their identity but lose their children.
func (r *SceneGraphResource) truncate(n *host.SceneNode, depth int, snapshot *sceneGraphSnapshot) *sceneNodeView {
	if n == nil {
		return nil
	}
	snapshot.NodeCount++
	view := &sceneNodeView{ID: n.ID, Name: n.Name, Type: n.Type}
	if depth >= r.maxDepth {
		if len(n.Children) > 0 {
			snapshot.Truncated = true
		}
		return view
	}
	for _, child := range n.Children {
		view.Children = append(view.Children, r.truncate(child, depth+1, snapshot))
	}
	return view
}
