package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stacklok/vault-mcp-registry/internal/api"
	"github.com/stacklok/vault-mcp-registry/internal/conversation"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/service"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

type success struct {
	Success bool `json:"success"`
}

var _ = Describe("Vault registry API", func() {
	var (
		root    string
		server  *httptest.Server
		baseURL string
	)

	addVault := func(name string) vault.Vault {
		dir := filepath.Join(root, name)
		Expect(os.MkdirAll(dir, 0750)).To(Succeed())

		var resp struct {
			Success bool         `json:"success"`
			Vault   *vault.Vault `json:"vault"`
		}
		Expect(request(http.MethodPost, baseURL+"/vaults", map[string]string{"path": dir, "name": name}, &resp)).
			To(Equal(http.StatusOK))
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Vault).NotTo(BeNil())
		return *resp.Vault
	}

	listServers := func(query string) map[string]mcpserver.Server {
		var servers map[string]mcpserver.Server
		Expect(request(http.MethodGet, baseURL+"/mcp-servers"+query, nil, &servers)).To(Equal(http.StatusOK))
		return servers
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		catalog := vault.NewCatalog(filepath.Join(root, "data"))
		resolver := vault.NewResolver(catalog, nil)
		svc := service.New(catalog, resolver, mcpserver.NewRegistry(resolver), conversation.NewRegistry(resolver))

		server = httptest.NewServer(api.NewServer(svc, api.WithMiddlewares(api.LoggingMiddleware)))
		baseURL = server.URL + "/api/v1"
		DeferCleanup(server.Close)
	})

	Context("without any vault", func() {
		It("lists no servers and refuses writes", func() {
			Expect(listServers("")).To(BeEmpty())

			var resp success
			Expect(request(http.MethodPost, baseURL+"/mcp-servers", map[string]string{"name": "x"}, &resp)).
				To(Equal(http.StatusOK))
			Expect(resp.Success).To(BeFalse())
		})

		It("reports no active vault for a window", func() {
			Expect(request(http.MethodGet, baseURL+"/windows/main/vault", nil, nil)).To(Equal(http.StatusNotFound))
		})
	})

	Context("with one vault", func() {
		var notes vault.Vault

		BeforeEach(func() {
			notes = addVault("notes")
		})

		It("runs the add, update, remove lifecycle", func() {
			By("starting empty")
			Expect(listServers("")).To(BeEmpty())

			By("adding a server without an id")
			var resp success
			request(http.MethodPost, baseURL+"/mcp-servers", map[string]string{"name": "x"}, &resp)
			Expect(resp.Success).To(BeTrue())

			servers := listServers("")
			Expect(servers).To(HaveLen(1))
			var id string
			for k, s := range servers {
				id = k
				Expect(s.ID).To(Equal(k))
				Expect(s.Name).To(Equal("x"))
			}

			By("persisting the document inside the vault")
			_, err := os.Stat(filepath.Join(notes.Path, ".vault", "mcp-servers-registry.json"))
			Expect(err).NotTo(HaveOccurred())

			By("refusing to update a missing id")
			request(http.MethodPut, baseURL+"/mcp-servers/missing", map[string]string{"name": "y"}, &resp)
			Expect(resp.Success).To(BeFalse())
			Expect(listServers("")).To(Equal(servers))

			By("removing the server")
			request(http.MethodDelete, baseURL+"/mcp-servers/"+id, nil, &resp)
			Expect(resp.Success).To(BeTrue())
			Expect(listServers("")).To(BeEmpty())
		})

		It("rejects malformed bodies", func() {
			req, err := http.NewRequest(http.MethodPost, baseURL+"/mcp-servers", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			_ = resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("with two vaults", func() {
		var first, second vault.Vault

		BeforeEach(func() {
			first = addVault("first")
			second = addVault("second")
		})

		It("routes each window to its active vault", func() {
			var resp success
			request(http.MethodPut, baseURL+"/windows/w2/vault", map[string]string{"vaultId": second.ID}, &resp)
			Expect(resp.Success).To(BeTrue())

			var active vault.Vault
			request(http.MethodGet, baseURL+"/windows/w2/vault", nil, &active)
			Expect(active.ID).To(Equal(second.ID))
			request(http.MethodGet, baseURL+"/windows/w1/vault", nil, &active)
			Expect(active.ID).To(Equal(first.ID))

			request(http.MethodPost, baseURL+"/mcp-servers?window=w2", map[string]string{"id": "only-second"}, &resp)
			Expect(resp.Success).To(BeTrue())

			Expect(listServers("?window=w2")).To(HaveKey("only-second"))
			Expect(listServers("?window=w1")).To(BeEmpty())
			Expect(listServers("")).To(BeEmpty())

			var summaries []service.VaultSummary
			Expect(request(http.MethodGet, baseURL+"/vaults/summary", nil, &summaries)).To(Equal(http.StatusOK))
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[1].Servers).To(Equal(1))
			Expect(summaries[1].Windows).To(ConsistOf("w2"))

			By("forgetting the window association when its vault is removed")
			request(http.MethodDelete, baseURL+"/vaults/"+second.ID, nil, &resp)
			Expect(resp.Success).To(BeTrue())
			request(http.MethodGet, baseURL+"/windows/w2/vault", nil, &active)
			Expect(active.ID).To(Equal(first.ID))
		})
	})
})
