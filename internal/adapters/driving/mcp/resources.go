package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for lexai resources.
	uriScheme = "lexai://"
)

// sourceInfo describes a search source to clients.
type sourceInfo struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	URI         string `json:"uri"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Search sources that search_cases accepts",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{kind}",
		Name:        "source",
		Description: "Description of one search source",
		MIMEType:    "application/json",
	}, s.handleSourceResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "quota",
		Name:        "quota",
		Description: "Today's search usage and premium status",
		MIMEType:    "application/json",
	}, s.handleQuotaResource)
}

// handleSourcesResource lists every source kind.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kinds := domain.AllSourceKinds()
	infos := make([]sourceInfo, len(kinds))
	for i, kind := range kinds {
		infos[i] = newSourceInfo(kind)
	}
	return jsonResource(req.Params.URI, infos)
}

// handleSourceResource describes a single source kind.
func (s *Server) handleSourceResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind := extractSourceKind(req.Params.URI)
	if !kind.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, newSourceInfo(kind))
}

// handleQuotaResource returns the quota ledger.
func (s *Server) handleQuotaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, quotaOutput(s.ports.Quota.ReadState(ctx)))
}

func newSourceInfo(kind domain.SourceKind) sourceInfo {
	return sourceInfo{
		Kind:        kind.String(),
		Description: kind.Description(),
		URI:         uriScheme + "sources/" + kind.String(),
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSourceKind extracts the kind from a URI like lexai://sources/{kind}.
// Unknown or malformed URIs yield an invalid kind.
func extractSourceKind(uri string) domain.SourceKind {
	const prefix = uriScheme + "sources/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return domain.SourceKind(strings.TrimPrefix(uri, prefix))
}
