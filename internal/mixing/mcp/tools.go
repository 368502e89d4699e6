package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/s1tools/mixing-server/internal/mixing/engine"
	"github.com/s1tools/mixing-server/pkg/mixing"
)

// ToolDefinition describes an MCP tool.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema JSONSchema `json:"inputSchema"`
}

// JSONSchema is a simplified JSON Schema representation.
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a schema property.
type Property struct {
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// GetToolDefinitions returns all tool definitions.
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		evaluateMixTool(),
		topMixesTool(),
		productLookupTool(),
		catalogListTool(),
		reloadCatalogTool(),
	}
}

func evaluateMixTool() ToolDefinition {
	return ToolDefinition{
		Name:        "evaluate_mix",
		Description: "Evaluate one mix: resolve the effects of applying the mixer sequence in order to the base product, and report market value, cost, profit, margin, and addictiveness.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"product_id": {Type: "string", Description: "Base product ID"},
				"mixers": {
					Type:        "array",
					Description: "Mixer IDs in application order; repeats allowed",
					Items:       &Property{Type: "string"},
				},
			},
			Required: []string{"product_id", "mixers"},
		},
	}
}

func topMixesTool() ToolDefinition {
	minOne := 1.0
	maxMixers := 8.0
	maxLimit := 100.0

	return ToolDefinition{
		Name:        "top_mixes",
		Description: "Search every mixer sequence up to max_mixers long for the product and return the most profitable ones, best first.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"product_id": {Type: "string", Description: "Base product ID"},
				"max_mixers": {
					Type:        "integer",
					Description: "Maximum sequence length to search",
					Default:     4,
					Minimum:     &minOne,
					Maximum:     &maxMixers,
				},
				"limit": {
					Type:        "integer",
					Description: "Number of results to return",
					Default:     5,
					Minimum:     &minOne,
					Maximum:     &maxLimit,
				},
				"max_evaluations": {
					Type:        "integer",
					Description: "Optional cap on sequences evaluated; the response is flagged truncated when hit",
				},
			},
			Required: []string{"product_id"},
		},
	}
}

func productLookupTool() ToolDefinition {
	return ToolDefinition{
		Name:        "product_lookup",
		Description: "Look up one base product and its starting effects.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"product_id": {Type: "string", Description: "Base product ID"},
			},
			Required: []string{"product_id"},
		},
	}
}

func catalogListTool() ToolDefinition {
	return ToolDefinition{
		Name:        "catalog_list",
		Description: "List all catalog records of one kind, ordered by ID.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"kind": {
					Type:        "string",
					Description: "Which records to list",
					Enum:        []string{"products", "mixers", "effects"},
				},
			},
			Required: []string{"kind"},
		},
	}
}

func reloadCatalogTool() ToolDefinition {
	return ToolDefinition{
		Name:        "reload_catalog",
		Description: "Reload the catalog snapshot from the store and reset the evaluation cache.",
		InputSchema: JSONSchema{Type: "object"},
	}
}

// ============================================
// TOOL HANDLERS
// ============================================

func (s *Server) toolEvaluateMix(ctx context.Context, args json.RawMessage) (any, error) {
	var req mixing.EvaluateMixRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ProductID == "" {
		return nil, errors.New("product_id is required")
	}

	result, err := s.engine.Evaluate(req.ProductID, req.Mixers)
	if err != nil {
		return nil, err
	}
	return mixing.EvaluateMixResponse{Result: result}, nil
}

func (s *Server) toolTopMixes(ctx context.Context, args json.RawMessage) (any, error) {
	var req mixing.TopMixesRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ProductID == "" {
		return nil, errors.New("product_id is required")
	}
	if req.MaxMixers == 0 {
		req.MaxMixers = s.search.MaxMixers
	}
	if req.Limit == 0 {
		req.Limit = s.search.Limit
	}
	if req.MaxEvaluations == 0 {
		req.MaxEvaluations = s.search.MaxEvaluations
	}

	opts := engine.SearchOptions{
		Workers:        s.search.Workers,
		MaxEvaluations: req.MaxEvaluations,
	}
	return s.engine.TopMixes(ctx, req.ProductID, req.MaxMixers, req.Limit, opts)
}

func (s *Server) toolProductLookup(ctx context.Context, args json.RawMessage) (any, error) {
	var req mixing.ProductLookupRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	cat := s.engine.Catalog()
	product, err := cat.Product(req.ProductID)
	if err != nil {
		return nil, err
	}

	resp := mixing.ProductLookupResponse{Product: product}
	for _, id := range product.StartingEffects {
		effect, err := cat.Effect(id)
		if err != nil {
			return nil, err
		}
		resp.StartingEffects = append(resp.StartingEffects, effect)
	}
	return resp, nil
}

func (s *Server) toolCatalogList(ctx context.Context, args json.RawMessage) (any, error) {
	var req mixing.CatalogListRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	cat := s.engine.Catalog()
	switch req.Kind {
	case "products":
		return mixing.CatalogListResponse{Products: cat.Products()}, nil
	case "mixers":
		return mixing.CatalogListResponse{Mixers: cat.Mixers()}, nil
	case "effects":
		return mixing.CatalogListResponse{Effects: cat.Effects()}, nil
	default:
		return nil, fmt.Errorf("unknown catalog kind: %q", req.Kind)
	}
}

func (s *Server) toolReloadCatalog(ctx context.Context, args json.RawMessage) (any, error) {
	if s.store == nil {
		return nil, errors.New("no catalog store configured")
	}

	cat, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Reload(cat); err != nil {
		return nil, err
	}

	products, mixers, effects := cat.Counts()
	s.logger.Info("catalog reloaded", "products", products, "mixers", mixers, "effects", effects)
	return mixing.ReloadCatalogResponse{Products: products, Mixers: mixers, Effects: effects}, nil
}
