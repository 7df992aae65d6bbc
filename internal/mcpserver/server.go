// Package mcpserver exposes the EcoQuest session over the Model Context
// Protocol so local assistants can onboard a user, run impact calculations,
// and pull personalized content through tools instead of the interactive UI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/ecoquest/internal/orchestrator"
	"github.com/kalambet/ecoquest/internal/profile"
	"github.com/kalambet/ecoquest/internal/screen"
)

// Deps holds dependencies for the MCP server.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
}

// New creates an MCP server with all EcoQuest tools and resources registered.
func New(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"ecoquest",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("EcoQuest — climate education companion: onboarding, carbon impact simulation, what-if scenarios, and local climate actions."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("onboard",
			mcp.WithDescription("Register the session user. Must be called before calculate_impact."),
			mcp.WithNumber("age", mcp.Description("Age bracket (15, 22, 30, or 40)"), mcp.Required()),
			mcp.WithArray("interests", mcp.Description("Climate interests (oceans, forests, energy, waste, transport, food)"), mcp.Required()),
			mcp.WithString("knowledge_level", mcp.Description("beginner, intermediate, or advanced"), mcp.Required()),
			mcp.WithString("learning_style", mcp.Description("Optional learning style (default mixed)")),
		),
		toolOnboard(deps),
	)

	s.AddTool(
		mcp.NewTool("calculate_impact",
			mcp.WithDescription("Simulate the daily, weekly, and yearly CO2 footprint for a set of habits."),
			mcp.WithString("transport", mcp.Description("car, bike, walk, or public"), mcp.Required()),
			mcp.WithString("diet", mcp.Description("meat, vegetarian, vegan, or pescatarian"), mcp.Required()),
			mcp.WithString("energy_usage", mcp.Description("low, medium, or high"), mcp.Required()),
			mcp.WithString("waste_habits", mcp.Description("minimal, average, or high"), mcp.Required()),
		),
		toolCalculateImpact(deps),
	)

	s.AddTool(
		mcp.NewTool("what_if",
			mcp.WithDescription("Narrate a hypothetical climate scenario as short paragraphs."),
			mcp.WithString("scenario", mcp.Description("The scenario to explore"), mcp.Required()),
		),
		toolWhatIf(deps),
	)

	s.AddTool(
		mcp.NewTool("local_actions",
			mcp.WithDescription("Fetch location-specific climate actions for the session user. Degrades to curated suggestions when the service is unavailable."),
		),
		toolLocalActions(deps),
	)

	s.AddTool(
		mcp.NewTool("learning_content",
			mcp.WithDescription("Fetch the personalized lesson list for the session user. Degrades to curated lessons when the service is unavailable."),
		),
		toolLearningContent(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"user://profile",
			"User Profile",
			mcp.WithResourceDescription("Current session profile as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		resourceProfile(deps),
	)

	return s
}

func toolOnboard(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		age, err := req.RequireInt("age")
		if err != nil {
			return toolError("age is required"), nil
		}
		interests := req.GetStringSlice("interests", nil)
		if len(interests) == 0 {
			return toolError("interests is required"), nil
		}
		level, err := req.RequireString("knowledge_level")
		if err != nil {
			return toolError("knowledge_level is required"), nil
		}
		style := req.GetString("learning_style", "")

		o := deps.Orchestrator
		if o.Screen() == screen.Welcome {
			if err := o.StartOnboarding(); err != nil {
				return toolError(fmt.Sprintf("failed to start onboarding: %v", err)), nil
			}
		}
		result, err := o.CompleteOnboarding(ctx, orchestrator.OnboardingInput{
			Age:            age,
			Interests:      interests,
			KnowledgeLevel: level,
			LearningStyle:  style,
		})
		if err != nil {
			return toolError(fmt.Sprintf("onboarding failed: %v", err)), nil
		}
		return toolText(result.WelcomeMessage), nil
	}
}

func toolCalculateImpact(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		habits := profile.Habits{
			Transport:   req.GetString("transport", ""),
			Diet:        req.GetString("diet", ""),
			EnergyUsage: req.GetString("energy_usage", ""),
			WasteHabits: req.GetString("waste_habits", ""),
		}
		result, err := deps.Orchestrator.CalculateImpact(ctx, habits)
		if err != nil {
			return toolError(fmt.Sprintf("impact calculation failed: %v", err)), nil
		}

		b, err := json.Marshal(result)
		if err != nil {
			return toolError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return toolText(string(b)), nil
	}
}

func toolWhatIf(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scenario, err := req.RequireString("scenario")
		if err != nil {
			return toolError("scenario is required"), nil
		}

		paragraphs, err := deps.Orchestrator.ExploreWhatIf(ctx, scenario)
		if err != nil && len(paragraphs) == 0 {
			return toolError(fmt.Sprintf("what-if failed: %v", err)), nil
		}
		// A degraded response still carries the generic message; pass it on.
		return toolText(strings.Join(paragraphs, "\n\n")), nil
	}
}

func toolLocalActions(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		actions := deps.Orchestrator.FetchLocalActions(ctx)
		b, err := json.Marshal(actions)
		if err != nil {
			return toolError(fmt.Sprintf("failed to marshal actions: %v", err)), nil
		}
		return toolText(string(b)), nil
	}
}

func toolLearningContent(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lessons := deps.Orchestrator.FetchLearningContent(ctx)
		b, err := json.Marshal(lessons)
		if err != nil {
			return toolError(fmt.Sprintf("failed to marshal lessons: %v", err)), nil
		}
		return toolText(string(b)), nil
	}
}

func resourceProfile(deps Deps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, ok := deps.Orchestrator.Profile()
		if !ok {
			return nil, fmt.Errorf("no profile: onboarding not completed")
		}

		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
