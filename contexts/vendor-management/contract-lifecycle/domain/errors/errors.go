package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("contract input is invalid")
	ErrInvalidDate         = errors.New("contract date is not parseable")
	ErrInvalidDateRange    = errors.New("endDate must be on or after startDate")
	ErrOverlappingContract = errors.New("overlapping contract exists for this vendor")
	ErrDuplicateContractID = errors.New("contractId already exists")
	ErrContractNotFound    = errors.New("contract not found")
)
