package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"steward/contexts/vendor-management/contract-lifecycle/application"
	"steward/contexts/vendor-management/contract-lifecycle/domain/entities"
	domainerrors "steward/contexts/vendor-management/contract-lifecycle/domain/errors"
	"steward/contexts/vendor-management/contract-lifecycle/ports"
	httptransport "steward/contexts/vendor-management/contract-lifecycle/transport/http"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateContractHandler(
	ctx context.Context,
	req httptransport.CreateContractRequest,
) (httptransport.ContractResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return httptransport.ContractResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return httptransport.ContractResponse{}, err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return httptransport.ContractResponse{}, err
	}

	contract, err := h.Service.CreateContract(ctx, ports.CreateContractInput{
		PublicID:    req.ContractID,
		VendorID:    req.VendorID,
		Title:       req.Title,
		Terms:       req.Terms,
		StartDate:   start,
		EndDate:     end,
		DocumentURL: req.DocumentURL,
		Status:      status,
	})
	if err != nil {
		return httptransport.ContractResponse{}, err
	}
	return httptransport.ContractResponse{Status: "success", Data: toDTO(contract)}, nil
}

func (h Handler) UpdateContractHandler(
	ctx context.Context,
	contractID string,
	req httptransport.UpdateContractRequest,
) (httptransport.ContractResponse, error) {
	input := ports.UpdateContractInput{
		PublicID:    req.ContractID,
		VendorID:    req.VendorID,
		Title:       req.Title,
		Terms:       req.Terms,
		DocumentURL: req.DocumentURL,
	}

	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return httptransport.ContractResponse{}, err
		}
		input.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return httptransport.ContractResponse{}, err
		}
		input.EndDate = &end
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return httptransport.ContractResponse{}, err
		}
		if status == "" {
			return httptransport.ContractResponse{}, domainerrors.ErrInvalidInput
		}
		input.Status = &status
	}

	contract, err := h.Service.UpdateContract(ctx, contractID, input)
	if err != nil {
		return httptransport.ContractResponse{}, err
	}
	return httptransport.ContractResponse{Status: "success", Data: toDTO(contract)}, nil
}

func (h Handler) GetContractHandler(ctx context.Context, contractID string) (httptransport.ContractResponse, error) {
	contract, err := h.Service.GetContract(ctx, contractID)
	if err != nil {
		return httptransport.ContractResponse{}, err
	}
	return httptransport.ContractResponse{Status: "success", Data: toDTO(contract)}, nil
}

func (h Handler) ListContractsHandler(
	ctx context.Context,
	req httptransport.ListContractsRequest,
) (httptransport.ListContractsResponse, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return httptransport.ListContractsResponse{}, err
	}

	contracts, err := h.Service.ListContracts(ctx, ports.ContractListFilter{
		VendorID:           req.VendorID,
		Status:             status,
		Active:             req.Active,
		Expired:            req.Expired,
		ExpiringWithinDays: req.ExpiringWithinDays,
	})
	if err != nil {
		return httptransport.ListContractsResponse{}, err
	}

	resp := httptransport.ListContractsResponse{
		Status: "success",
		Data:   make([]httptransport.ContractDTO, 0, len(contracts)),
	}
	for _, contract := range contracts {
		resp.Data = append(resp.Data, toDTO(contract))
	}
	return resp, nil
}

func (h Handler) DeleteContractHandler(ctx context.Context, contractID string) error {
	return h.Service.DeleteContract(ctx, contractID)
}

func (h Handler) AttachDocumentHandler(
	ctx context.Context,
	contractID string,
	req httptransport.AttachDocumentRequest,
) (httptransport.ContractResponse, error) {
	contract, err := h.Service.AttachDocument(ctx, contractID, req.DocumentURL)
	if err != nil {
		return httptransport.ContractResponse{}, err
	}
	return httptransport.ContractResponse{Status: "success", Data: toDTO(contract)}, nil
}

func toDTO(contract entities.Contract) httptransport.ContractDTO {
	return httptransport.ContractDTO{
		ID:          contract.ContractID,
		ContractID:  contract.PublicID,
		VendorID:    contract.VendorID,
		Title:       contract.Title,
		Terms:       contract.Terms,
		StartDate:   contract.StartDate.UTC().Format(dateLayout),
		EndDate:     contract.EndDate.UTC().Format(dateLayout),
		DocumentURL: contract.DocumentURL,
		Status:      string(contract.Status),
		CreatedAt:   contract.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   contract.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// parseDate accepts the wire date-only form first and falls back to RFC3339
// for callers that send full instants. Everything is normalized to UTC.
func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, domainerrors.ErrInvalidDate
	}
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, domainerrors.ErrInvalidDate
}

func parseStatus(raw string) (entities.ContractStatus, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return "", nil
	}
	status := entities.ContractStatus(value)
	if !status.Valid() {
		return "", domainerrors.ErrInvalidInput
	}
	return status, nil
}
