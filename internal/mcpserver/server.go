// Package mcpserver wires the MCP integration surface. It exposes
// read-only CRM tools over streamable HTTP so agent clients can inspect
// business units, contacts, and channel preferences without touching
// the session-based API.
package mcpserver

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinculocrm/vinculo/internal/service"
)

// Version is set at build time via ldflags.
var Version = "dev"

type Server struct {
	unitService       *service.BusinessUnitService
	channelService    *service.ChannelSettingService
	contactService    *service.ContactService
	linkService       *service.ContactLinkService
	preferenceService *service.ChannelPreferenceService
}

// New creates the MCP server with all CRM tools registered
func New(
	unitService *service.BusinessUnitService,
	channelService *service.ChannelSettingService,
	contactService *service.ContactService,
	linkService *service.ContactLinkService,
	preferenceService *service.ChannelPreferenceService,
) *server.MCPServer {
	h := &Server{
		unitService:       unitService,
		channelService:    channelService,
		contactService:    contactService,
		linkService:       linkService,
		preferenceService: preferenceService,
	}

	s := server.NewMCPServer(
		"vinculo",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Read-only CRM tools. All tools are scoped to one organization; pass its id with every call."),
	)

	s.AddTool(mcp.NewTool("list_business_units",
		mcp.WithDescription("List the organization's business units with code, name, and active flag."),
		mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization UUID")),
	), h.handleListBusinessUnits)

	s.AddTool(mcp.NewTool("get_business_unit_channels",
		mcp.WithDescription("Get the email and whatsapp channel settings of a business unit. Secrets are redacted."),
		mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization UUID")),
		mcp.WithString("business_unit_id", mcp.Required(), mcp.Description("Business unit UUID")),
	), h.handleGetBusinessUnitChannels)

	s.AddTool(mcp.NewTool("list_contacts",
		mcp.WithDescription("List the organization's contacts."),
		mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization UUID")),
	), h.handleListContacts)

	s.AddTool(mcp.NewTool("get_contact_business_units",
		mcp.WithDescription("Get the business units a contact is linked to, with relationship types."),
		mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization UUID")),
		mcp.WithString("contact_id", mcp.Required(), mcp.Description("Contact UUID")),
	), h.handleGetContactBusinessUnits)

	s.AddTool(mcp.NewTool("get_contact_channel_preferences",
		mcp.WithDescription("Get a contact's per-unit channel opt-in preferences."),
		mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization UUID")),
		mcp.WithString("contact_id", mcp.Required(), mcp.Description("Contact UUID")),
	), h.handleGetContactChannelPreferences)

	return s
}

// NewHTTPHandler wraps the MCP server as a streamable HTTP handler
// guarded by a shared API key.
func NewHTTPHandler(s *server.MCPServer, apiKey string) http.Handler {
	streamable := server.NewStreamableHTTPServer(s, server.WithStateLess(true))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			http.Error(w, "MCP surface is not configured", http.StatusNotFound)
			return
		}

		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || subtle.ConstantTimeCompare([]byte(parts[1]), []byte(apiKey)) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		streamable.ServeHTTP(w, r)
	})
}

func uuidArg(request mcp.CallToolRequest, name string) (uuid.UUID, error) {
	raw, err := request.RequireString(name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a UUID", name)
	}
	return id, nil
}

func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (h *Server) handleListBusinessUnits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := uuidArg(request, "organization_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	units, err := h.unitService.List(ctx, orgID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(units)
}

func (h *Server) handleGetBusinessUnitChannels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := uuidArg(request, "organization_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unitID, err := uuidArg(request, "business_unit_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view, err := h.channelService.Get(ctx, orgID, unitID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(redactChannelSecrets(view))
}

func (h *Server) handleListContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := uuidArg(request, "organization_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	contacts, err := h.contactService.List(ctx, orgID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(contacts)
}

func (h *Server) handleGetContactBusinessUnits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := uuidArg(request, "organization_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contactID, err := uuidArg(request, "contact_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view, err := h.linkService.GetLinks(ctx, orgID, contactID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view)
}

func (h *Server) handleGetContactChannelPreferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := uuidArg(request, "organization_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contactID, err := uuidArg(request, "contact_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view, err := h.preferenceService.GetPreferences(ctx, orgID, contactID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view)
}

// secretConfigKeys are config fields that never leave the server through
// the MCP surface.
var secretConfigKeys = map[string]bool{
	"smtpPassword": true,
	"accessToken":  true,
}

func redactChannelSecrets(view *service.ChannelSettingsView) *service.ChannelSettingsView {
	for _, channel := range view.Channels {
		if channel == nil || channel.Config == nil {
			continue
		}
		for key := range channel.Config {
			if secretConfigKeys[key] && channel.Config[key] != nil {
				channel.Config[key] = "[redacted]"
			}
		}
	}
	return view
}
