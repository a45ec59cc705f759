package enums

// ErrorCode represents standardized error codes shown on problem pages
type ErrorCode string

// Standard error codes for the application
const (
	ErrorCodeResourceNotFound   ErrorCode = "RES_001"
	ErrorCodeValidationFailed   ErrorCode = "VAL_001"
	ErrorCodeStorageConflict    ErrorCode = "STO_001"
	ErrorCodeStorageUnavailable ErrorCode = "STO_002"
	ErrorCodeBadRequest         ErrorCode = "BAD_REQUEST"
	ErrorCodeInternalServer     ErrorCode = "SRV_001"
)
