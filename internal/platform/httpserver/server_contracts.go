package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	contracterrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
	contracthttp "steward/contexts/vendor-management/contract-lifecycle/transport/http"
)

func writeContractError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, contracthttp.ErrorResponse{Code: code, Message: message})
}

func writeContractDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contracterrors.ErrContractNotFound):
		writeContractError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, contracterrors.ErrInvalidInput),
		errors.Is(err, contracterrors.ErrInvalidDate),
		errors.Is(err, contracterrors.ErrInvalidDateRange):
		writeContractError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, contracterrors.ErrOverlappingContract),
		errors.Is(err, contracterrors.ErrDuplicateContractID):
		writeContractError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeContractError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) decodeContractJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeContractError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var req contracthttp.CreateContractRequest
	if !s.decodeContractJSON(w, r, &req) {
		return
	}
	resp, err := s.contracts.Handler.CreateContractHandler(r.Context(), req)
	if err != nil {
		writeContractDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := contracthttp.ListContractsRequest{
		VendorID: query.Get("vendor_id"),
		Status:   query.Get("status"),
		Active:   query.Get("active") == "true",
		Expired:  query.Get("expired") == "true",
	}
	if raw := query.Get("expiring_within_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			writeContractError(w, http.StatusBadRequest, "invalid_request", "expiring_within_days must be a non-negative integer")
			return
		}
		req.ExpiringWithinDays = days
	}

	resp, err := s.contracts.Handler.ListContractsHandler(r.Context(), req)
	if err != nil {
		writeContractDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	resp, err := s.contracts.Handler.GetContractHandler(r.Context(), r.PathValue("contract_id"))
	if err != nil {
		writeContractDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	var req contracthttp.UpdateContractRequest
	if !s.decodeContractJSON(w, r, &req) {
		return
	}
	resp, err := s.contracts.Handler.UpdateContractHandler(r.Context(), r.PathValue("contract_id"), req)
	if err != nil {
		writeContractDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := s.contracts.Handler.DeleteContractHandler(r.Context(), r.PathValue("contract_id")); err != nil {
		writeContractDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAttachDocument(w http.ResponseWriter, r *http.Request) {
	var req contracthttp.AttachDocumentRequest
	if !s.decodeContractJSON(w, r, &req) {
		return
	}
	resp, err := s.contracts.Handler.AttachDocumentHandler(r.Context(), r.PathValue("contract_id"), req)
	if err != nil {
		writeContractDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
