package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notify-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolCaller runs a named tool with decoded JSON arguments.
type ToolCaller interface {
	Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult
}

type ToolHandler struct {
	tools     ToolCaller
	providers ProviderLister
}

func NewToolHandler(caller ToolCaller, providers ProviderLister) (*ToolHandler, error) {
	if caller == nil {
		return nil, fmt.Errorf("tool caller is required")
	}
	if providers == nil {
		return nil, fmt.Errorf("provider lister is required")
	}
	return &ToolHandler{tools: caller, providers: providers}, nil
}

func RegisterToolRoutes(router fiber.Router, caller ToolCaller, providers ProviderLister) error {
	h, err := NewToolHandler(caller, providers)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/tools", h.ListTools)
	v1.Post("/tools/:name", h.CallTool)
	v1.Get("/providers", h.ListProviders)

	return nil
}

func (h *ToolHandler) ListTools(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tools": tools.Definitions(),
	})
}

// CallTool always answers 200 once the body decodes; tool failures are
// reported through the result's isError flag, as on the stdio transport.
func (h *ToolHandler) CallTool(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))

	args := map[string]any{}
	if body := c.Body(); len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	result := h.tools.Call(c.UserContext(), name, args)
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ToolHandler) ListProviders(c *fiber.Ctx) error {
	names := h.providers.ProviderNames()
	if names == nil {
		names = []string{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"providers": names,
	})
}
