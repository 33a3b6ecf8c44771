package details

import "errors"

// Sentinel errors returned while compiling details. All of them are fatal
// for the template being documented.
var (
	ErrSchemaValidation     = errors.New("schema validation")
	ErrRecursiveInheritance = errors.New("recursive inheritance")
	ErrUnknownGroupMember   = errors.New("unknown group member")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrParameterType        = errors.New("parameter type")
	ErrReadInput            = errors.New("read input")
)
