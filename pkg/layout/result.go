package layout

// Result is the outcome of a row operation. Failing results are expected control flow,
// not errors.
type Result int

const (
	Success Result = iota
	Failure
	NotFound
	Exists
	TooBig
	TypeMismatch
	InsufficientPermissions
	TypeConstraint
	InvalidRow
	InsufficientBuffer
	Canceled
)

var resultNames = [...]string{
	Success:                 "Success",
	Failure:                 "Failure",
	NotFound:                "NotFound",
	Exists:                  "Exists",
	TooBig:                  "TooBig",
	TypeMismatch:            "TypeMismatch",
	InsufficientPermissions: "InsufficientPermissions",
	TypeConstraint:          "TypeConstraint",
	InvalidRow:              "InvalidRow",
	InsufficientBuffer:      "InsufficientBuffer",
	Canceled:                "Canceled",
}

func (r Result) String() string {
	if r >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "Unknown"
}

// UpdateOptions selects how a sparse write treats an existing field.
type UpdateOptions int

const (
	// Update replaces an existing field and fails NotFound otherwise.
	Update UpdateOptions = iota + 1
	// Insert adds a new field and fails Exists otherwise.
	Insert
	// Upsert writes whether or not the field exists.
	Upsert
	// InsertAt inserts before the current element of an indexed scope, shifting the rest right.
	InsertAt
)

func (o UpdateOptions) String() string {
	switch o {
	case Update:
		return "Update"
	case Insert:
		return "Insert"
	case Upsert:
		return "Upsert"
	case InsertAt:
		return "InsertAt"
	default:
		return "None"
	}
}
