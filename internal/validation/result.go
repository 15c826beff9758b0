package validation

// Code identifies why a validation failed.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeRequired           Code = "required"
	CodeTooLong            Code = "too_long"
	CodeTooShort           Code = "too_short"
	CodeOutOfRange         Code = "out_of_range"
	CodeEmptyInput         Code = "empty_input"
	CodeSumMismatch        Code = "sum_mismatch"
	CodeNotUnique          Code = "not_unique"
	CodeTooFew             Code = "too_few"
	CodeTooMany            Code = "too_many"
	CodeDuplicateSelection Code = "duplicate_selection"
	CodeInvalidID          Code = "invalid_id"
	CodeLocked             Code = "locked"
)

// Category groups failure codes by the kind of rule that was broken.
type Category string

const (
	CategoryStructural  Category = "structural"
	CategoryRange       Category = "range"
	CategoryConsistency Category = "consistency"
	CategoryState       Category = "state"
)

// Category returns the rule category for c. The empty code has no category.
func (c Code) Category() Category {
	switch c {
	case CodeOutOfRange:
		return CategoryRange
	case CodeSumMismatch, CodeNotUnique, CodeDuplicateSelection, CodeInvalidID:
		return CategoryConsistency
	case CodeLocked:
		return CategoryState
	case "":
		return ""
	default:
		return CategoryStructural
	}
}

// Result is the outcome of a validator. Error is empty iff Valid is true.
type Result struct {
	Valid bool   `json:"valid"`
	Code  Code   `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// OK is the passing result.
func OK() Result {
	return Result{Valid: true}
}

// Fail builds a failing result.
func Fail(code Code, msg string) Result {
	return Result{Valid: false, Code: code, Error: msg}
}

// Err returns the result as an error, or nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Code: r.Code, Message: r.Error}
}

// Error is a failed Result carried through an error return.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// prefixed copies r with msg prepended to its error text.
func (r Result) prefixed(prefix string) Result {
	if r.Valid {
		return r
	}
	r.Error = prefix + r.Error
	return r
}
