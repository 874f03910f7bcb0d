// Package v1 provides the version 1 REST handlers for the vault registries.
//
// Registry routes act on the active vault of the calling window, taken from the
// "window" query parameter or the X-Window-ID header. Without a window id the first
// known vault is used. Write routes answer 200 with {"success": bool}.
package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stacklok/vault-mcp-registry/internal/api/common"
	"github.com/stacklok/vault-mcp-registry/internal/conversation"
	"github.com/stacklok/vault-mcp-registry/internal/filtering"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/service"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

// WindowHeader carries the caller's window id
const WindowHeader = "X-Window-ID"

// ImportResponse is returned by the MCP server import route
type ImportResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

// AddVaultRequest is the body of POST /vaults
type AddVaultRequest struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

// AddVaultResponse is returned by POST /vaults
type AddVaultResponse struct {
	Success bool         `json:"success"`
	Vault   *vault.Vault `json:"vault,omitempty"`
}

// SetWindowVaultRequest is the body of PUT /windows/{windowID}/vault
type SetWindowVaultRequest struct {
	VaultID string `json:"vaultId"`
}

// Routes holds the v1 handlers
type Routes struct {
	service service.RegistryService
}

// Router creates the v1 router
func Router(svc service.RegistryService) http.Handler {
	routes := &Routes{service: svc}

	r := chi.NewRouter()

	r.Route("/mcp-servers", func(r chi.Router) {
		r.Get("/", routes.listMcpServers)
		r.Post("/", routes.addMcpServer)
		r.Post("/import", routes.importMcpServers)
		r.Put("/{id}", routes.updateMcpServer)
		r.Delete("/{id}", routes.removeMcpServer)
	})

	r.Route("/conversations", func(r chi.Router) {
		r.Get("/", routes.listConversations)
		r.Post("/", routes.addConversation)
		r.Put("/{id}", routes.updateConversation)
		r.Delete("/{id}", routes.removeConversation)
	})

	r.Route("/vaults", func(r chi.Router) {
		r.Get("/", routes.listVaults)
		r.Post("/", routes.addVault)
		r.Get("/summary", routes.vaultSummaries)
		r.Delete("/{id}", routes.removeVault)
	})

	r.Route("/windows/{windowID}/vault", func(r chi.Router) {
		r.Get("/", routes.getWindowVault)
		r.Put("/", routes.setWindowVault)
		r.Delete("/", routes.clearWindowVault)
	})

	return r
}

// windowID returns the optional window id of the request
func windowID(r *http.Request) string {
	if id := r.URL.Query().Get("window"); id != "" {
		return id
	}
	return r.Header.Get(WindowHeader)
}

// nameFilter reads repeated "include" and "exclude" query parameters
func nameFilter(r *http.Request) filtering.NameFilter {
	q := r.URL.Query()
	return filtering.NameFilter{Include: q["include"], Exclude: q["exclude"]}
}

func (rt *Routes) listMcpServers(w http.ResponseWriter, r *http.Request) {
	common.WriteJSONResponse(w, rt.service.GetMcpServers(r.Context(), windowID(r)), http.StatusOK)
}

func (rt *Routes) addMcpServer(w http.ResponseWriter, r *http.Request) {
	var server mcpserver.Server
	if err := common.DecodeJSON(w, r, &server); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, ok := rt.service.AddMcpServer(r.Context(), server, windowID(r))
	common.WriteSuccess(w, ok)
}

func (rt *Routes) updateMcpServer(w http.ResponseWriter, r *http.Request) {
	var server mcpserver.Server
	if err := common.DecodeJSON(w, r, &server); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.UpdateMcpServer(r.Context(), id, server, windowID(r)))
}

func (rt *Routes) removeMcpServer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.RemoveMcpServer(r.Context(), id, windowID(r)))
}

func (rt *Routes) importMcpServers(w http.ResponseWriter, r *http.Request) {
	data, err := common.ReadBody(w, r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, ok := rt.service.ImportMcpServers(r.Context(), data, nameFilter(r), windowID(r))
	common.WriteJSONResponse(w, ImportResponse{Success: ok, Imported: n}, http.StatusOK)
}

func (rt *Routes) listConversations(w http.ResponseWriter, r *http.Request) {
	common.WriteJSONResponse(w, rt.service.GetConversations(r.Context(), windowID(r)), http.StatusOK)
}

func (rt *Routes) addConversation(w http.ResponseWriter, r *http.Request) {
	var c conversation.Conversation
	if err := common.DecodeJSON(w, r, &c); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, ok := rt.service.AddConversation(r.Context(), c, windowID(r))
	common.WriteSuccess(w, ok)
}

func (rt *Routes) updateConversation(w http.ResponseWriter, r *http.Request) {
	var c conversation.Conversation
	if err := common.DecodeJSON(w, r, &c); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.UpdateConversation(r.Context(), id, c, windowID(r)))
}

func (rt *Routes) removeConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.RemoveConversation(r.Context(), id, windowID(r)))
}

// pathParam reads a URL parameter and answers 400 when it is unusable
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, err := common.PathParam(r, name)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return v, true
}
