package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Points distribution ───────────────────────────────────────────
	ErrEmptyItemSet          ErrCode = "EMPTY_ITEM_SET"
	ErrBudgetExceeded        ErrCode = "BUDGET_EXCEEDED"
	ErrBudgetMismatch        ErrCode = "BUDGET_MISMATCH"
	ErrDistributionViolation ErrCode = "DISTRIBUTION_INVARIANT_VIOLATION"
	ErrPointsRequired        ErrCode = "POINTS_REQUIRED"

	// ─── Question type rules ───────────────────────────────────────────
	ErrPointsMismatch      ErrCode = "POINTS_MISMATCH"
	ErrInvalidCorrectCount ErrCode = "INVALID_CORRECT_COUNT"
	ErrInvalidOptionCount  ErrCode = "INVALID_OPTION_COUNT"
	ErrInsufficientOptions ErrCode = "INSUFFICIENT_OPTIONS"
	ErrMissingOrderIndex   ErrCode = "MISSING_ORDER_INDEX"
	ErrUnsupportedType     ErrCode = "UNSUPPORTED_QUESTION_TYPE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the default human-readable message for an error code.
// Distribution and rule failures usually carry a more specific message with
// the offending values; handlers pass that through instead.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrEmptyItemSet:
		return "At least one item is required to distribute points."
	case ErrBudgetExceeded:
		return "Assigned points exceed the available budget."
	case ErrBudgetMismatch:
		return "Assigned points do not sum to the budget."
	case ErrDistributionViolation:
		return "Distributed points do not sum to the budget."
	case ErrPointsRequired:
		return "The question must have points assigned."
	case ErrPointsMismatch:
		return "Option points do not match the question points."
	case ErrInvalidCorrectCount:
		return "The number of correct options is invalid for this question type."
	case ErrInvalidOptionCount:
		return "The number of options is invalid for this question type."
	case ErrInsufficientOptions:
		return "The question does not have enough options for its type."
	case ErrMissingOrderIndex:
		return "Every option of this question type must carry an order index."
	case ErrUnsupportedType:
		return "The question type is not supported."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
