package httptransport

type CreateContractRequest struct {
	ContractID  string `json:"contract_id"`
	VendorID    string `json:"vendor_id"`
	Title       string `json:"title"`
	Terms       string `json:"terms"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	DocumentURL string `json:"document_url,omitempty"`
	Status      string `json:"status,omitempty"`
}

type UpdateContractRequest struct {
	ContractID  *string `json:"contract_id,omitempty"`
	VendorID    *string `json:"vendor_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Terms       *string `json:"terms,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	DocumentURL *string `json:"document_url,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type ListContractsRequest struct {
	VendorID           string `json:"vendor_id,omitempty"`
	Status             string `json:"status,omitempty"`
	Active             bool   `json:"active,omitempty"`
	Expired            bool   `json:"expired,omitempty"`
	ExpiringWithinDays int    `json:"expiring_within_days,omitempty"`
}

type AttachDocumentRequest struct {
	DocumentURL string `json:"document_url"`
}

type ContractDTO struct {
	ID          string `json:"id"`
	ContractID  string `json:"contract_id"`
	VendorID    string `json:"vendor_id"`
	Title       string `json:"title"`
	Terms       string `json:"terms"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	DocumentURL string `json:"document_url,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ContractResponse struct {
	Status string      `json:"status"`
	Data   ContractDTO `json:"data"`
}

type ListContractsResponse struct {
	Status string        `json:"status"`
	Data   []ContractDTO `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
