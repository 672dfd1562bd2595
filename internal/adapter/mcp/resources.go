package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

const (
	resourceAnimals = "farm://animals"
	resourceSummary = "farm://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcplib.NewResource(resourceAnimals, "Animals",
			mcplib.WithResourceDescription("Status of every animal on the farm"),
			mcplib.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			list, err := s.farm.List(ctx)
			if err != nil {
				return nil, err
			}
			return jsonContents(req.Params.URI, list)
		},
	)

	s.mcpServer.AddResource(
		mcplib.NewResource(resourceSummary, "Farm Summary",
			mcplib.WithResourceDescription("Animal counts by type and condition"),
			mcplib.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			sum, err := s.farm.Summary(ctx)
			if err != nil {
				return nil, err
			}
			return jsonContents(req.Params.URI, sum)
		},
	)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
