package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/abdul-hamid-achik/flatroutes/internal/version"
	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/abdul-hamid-achik/flatroutes/pkg/match"
	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/mark3labs/mcp-go/mcp"
)

type collisionResult struct {
	Kind    string   `json:"kind"`
	Key     string   `json:"key"`
	Kept    string   `json:"kept"`
	Dropped []string `json:"dropped"`
	Message string   `json:"message"`
}

func (s *Server) handleBuildManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	appDir := req.GetString("app_dir", cfg.AppDir)
	convention := scanner.Convention(req.GetString("convention", cfg.Convention))
	if !convention.IsValid() {
		return mcp.NewToolResultError("unknown convention: " + string(convention)), nil
	}

	opts := cfg.ScannerOptions()
	opts.Convention = convention
	if convention != scanner.Convention(cfg.Convention) {
		// Convention-specific overrides from the config don't carry over.
		opts = scanner.Options{Convention: convention, Extensions: cfg.Extensions}
	}

	result, err := scanner.NewScanner(s.resolve(appDir), opts).Scan()
	if err != nil {
		return toolError(err), nil
	}

	collisions := make([]collisionResult, 0, len(result.Collisions))
	for _, c := range result.Collisions {
		collisions = append(collisions, collisionResult{
			Kind:    string(c.Kind),
			Key:     c.Key,
			Kept:    c.Winner(),
			Dropped: c.Dropped(),
			Message: c.Message(),
		})
	}

	return jsonResult(map[string]any{
		"success":    true,
		"app_dir":    appDir,
		"convention": string(convention),
		"files":      len(result.Files),
		"routes":     result.Manifest,
		"collisions": collisions,
	})
}

func (s *Server) handleRoutePath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	p, err := routes.RoutePath(id)
	if err != nil {
		return toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"id":      id,
		"path":    "/" + p,
		"index":   routes.IsIndexRoute(id),
		"openapi": generator.OpenAPIPaths("/" + p),
	})
}

func (s *Server) handleMatchPath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urlPath, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	appDir := req.GetString("app_dir", cfg.AppDir)

	result, err := scanner.NewScanner(s.resolve(appDir), cfg.ScannerOptions()).Scan()
	if err != nil {
		return toolError(err), nil
	}

	res, ok := match.New(result.Manifest).Match(urlPath)
	if !ok {
		return mcp.NewToolResultError("no route matches " + urlPath), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"path":    urlPath,
		"match":   res,
	})
}

func (s *Server) handleGenerateRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := generator.GenerateRoute(generator.RouteConfig{
		ID:         id,
		AppDir:     s.resolve(cfg.AppDir),
		Convention: scanner.Convention(cfg.Convention),
		Extension:  req.GetString("extension", ""),
	})
	if err != nil {
		return toolError(err), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"files":   result.Files,
		"pattern": result.Pattern,
	})
}

func (s *Server) handleInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":        true,
		"version":        version.GetVersion(),
		"schema_version": version.GetManifestSchemaVersion(),
		"workdir":        s.workdir,
		"config":         cfg,
	})
}

// toolError reports err to the client, naming the offending segment for
// invalid route ids.
func toolError(err error) *mcp.CallToolResult {
	var segErr *routes.SegmentError
	if errors.As(err, &segErr) {
		data, _ := json.MarshalIndent(map[string]any{
			"success": false,
			"error":   err.Error(),
			"segment": segErr.Segment,
			"id":      segErr.RouteID,
			"char":    segErr.Char,
		}, "", "  ")
		return mcp.NewToolResultError(string(data))
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
