package v1

import (
	"net/http"

	"github.com/stacklok/vault-mcp-registry/internal/api/common"
)

func (rt *Routes) listVaults(w http.ResponseWriter, r *http.Request) {
	common.WriteJSONResponse(w, rt.service.ListVaults(r.Context()), http.StatusOK)
}

func (rt *Routes) addVault(w http.ResponseWriter, r *http.Request) {
	var req AddVaultRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		common.WriteErrorResponse(w, "path is required", http.StatusBadRequest)
		return
	}

	v, ok := rt.service.AddVault(r.Context(), req.Path, req.Name)
	resp := AddVaultResponse{Success: ok}
	if ok {
		resp.Vault = &v
	}
	common.WriteJSONResponse(w, resp, http.StatusOK)
}

func (rt *Routes) removeVault(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.RemoveVault(r.Context(), id))
}

func (rt *Routes) vaultSummaries(w http.ResponseWriter, r *http.Request) {
	common.WriteJSONResponse(w, rt.service.VaultSummaries(r.Context()), http.StatusOK)
}

func (rt *Routes) getWindowVault(w http.ResponseWriter, r *http.Request) {
	window, ok := pathParam(w, r, "windowID")
	if !ok {
		return
	}
	v, ok := rt.service.ActiveVault(r.Context(), window)
	if !ok {
		common.WriteErrorResponse(w, "no vault available", http.StatusNotFound)
		return
	}
	common.WriteJSONResponse(w, v, http.StatusOK)
}

func (rt *Routes) setWindowVault(w http.ResponseWriter, r *http.Request) {
	var req SetWindowVaultRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.VaultID == "" {
		common.WriteErrorResponse(w, "vaultId is required", http.StatusBadRequest)
		return
	}
	window, ok := pathParam(w, r, "windowID")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.SetActiveVault(r.Context(), window, req.VaultID))
}

func (rt *Routes) clearWindowVault(w http.ResponseWriter, r *http.Request) {
	window, ok := pathParam(w, r, "windowID")
	if !ok {
		return
	}
	common.WriteSuccess(w, rt.service.ClearActiveVault(r.Context(), window))
}
