package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	CodeStateReadError    Code = "STATE_READ_ERROR"
	CodeStateParseError   Code = "STATE_PARSE_ERROR"
	CodeStateNotFound     Code = "STATE_NOT_FOUND"
	CodeScanKindError     Code = "SCAN_KIND_ERROR"
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeImportError       Code = "IMPORT_ERROR"
	CodeStatePruneError   Code = "STATE_PRUNE_ERROR"
	CodeInvalidChoice     Code = "INVALID_RESOLUTION_CHOICE"
	CodeInvalidPrefix     Code = "INVALID_PREFIX"
	CodeNamingViolation   Code = "NAMING_VIOLATION"
	CodeTerraformMissing  Code = "TERRAFORM_MISSING"
	CodeNotImplemented    Code = "NOT_IMPLEMENTED"
	CodeTimeout           Code = "TIMEOUT_ERROR"
)

func (c Code) String() string {
	return string(c)
}
