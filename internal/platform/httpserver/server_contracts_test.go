package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contractlifecycle "steward/contexts/vendor-management/contract-lifecycle"
	contracthttp "steward/contexts/vendor-management/contract-lifecycle/transport/http"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(contractlifecycle.NewInMemoryModule(nil), nil, ":0")
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

const validCreateBody = `{
	"contract_id": "CT-100",
	"vendor_id": "vendor-1",
	"title": "Facilities maintenance",
	"terms": "Quarterly on-site service",
	"start_date": "2020-01-01",
	"end_date": "2099-12-31"
}`

func TestCreateContractRoute(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/contracts", validCreateBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp contracthttp.ContractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Data.Status != "ACTIVE" {
		t.Fatalf("derived status = %s, want ACTIVE", resp.Data.Status)
	}
	if resp.Data.ID == "" || resp.Data.ContractID != "CT-100" {
		t.Fatalf("unexpected identifiers: %+v", resp.Data)
	}
}

func TestCreateContractRouteRejectsBadDates(t *testing.T) {
	server := newTestServer(t)

	body := strings.Replace(validCreateBody, "2020-01-01", "not-a-date", 1)
	rec := doJSON(t, server, http.MethodPost, "/contracts", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	body = strings.Replace(validCreateBody, "2099-12-31", "2019-01-01", 1)
	rec = doJSON(t, server, http.MethodPost, "/contracts", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted range status = %d, want 400", rec.Code)
	}
}

func TestCreateContractRouteConflicts(t *testing.T) {
	server := newTestServer(t)

	if rec := doJSON(t, server, http.MethodPost, "/contracts", validCreateBody); rec.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", rec.Code)
	}

	// Same public id.
	duplicate := strings.Replace(validCreateBody, "vendor-1", "vendor-2", 1)
	if rec := doJSON(t, server, http.MethodPost, "/contracts", duplicate); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate id status = %d, want 409", rec.Code)
	}

	// Same vendor, intersecting interval.
	overlapping := strings.Replace(validCreateBody, "CT-100", "CT-101", 1)
	if rec := doJSON(t, server, http.MethodPost, "/contracts", overlapping); rec.Code != http.StatusConflict {
		t.Fatalf("overlap status = %d, want 409", rec.Code)
	}
}

func TestGetContractRouteNotFound(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/contracts/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestContractLifecycleRoutes(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/contracts", validCreateBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}
	var created contracthttp.ContractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	id := created.Data.ID

	rec = doJSON(t, server, http.MethodPatch, "/contracts/"+id, `{"status": "TERMINATED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("terminate failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodGet, "/contracts/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d", rec.Code)
	}
	var fetched contracthttp.ContractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if fetched.Data.Status != "TERMINATED" {
		t.Fatalf("status after terminate = %s", fetched.Data.Status)
	}

	rec = doJSON(t, server, http.MethodPost, "/contracts/"+id+"/document", `{"document_url": "/uploads/contracts/ct-100.pdf"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("attach failed: %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodDelete, "/contracts/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	rec = doJSON(t, server, http.MethodGet, "/contracts/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}
}

func TestListContractsRouteFilters(t *testing.T) {
	server := newTestServer(t)

	if rec := doJSON(t, server, http.MethodPost, "/contracts", validCreateBody); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec := doJSON(t, server, http.MethodGet, "/contracts?vendor_id=vendor-1&active=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}
	var resp contracthttp.ListContractsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("list count = %d, want 1", len(resp.Data))
	}

	rec = doJSON(t, server, http.MethodGet, "/contracts?expiring_within_days=nope", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid window param status = %d, want 400", rec.Code)
	}
}
