package diagnostics

// Error codes for the Brain compiler.
const (
	// Lexer errors (L prefix)
	ErrUnexpectedCharacter = "L0001"
	ErrUnterminatedString  = "L0002"
	ErrInvalidCharLiteral  = "L0003"

	// Parser errors (P prefix)
	ErrUnexpectedToken = "P0001"
	ErrExpectedToken   = "P0002"
	ErrInvalidPattern  = "P0003"
	ErrInvalidType     = "P0004"

	// Module resolution errors (M prefix)
	ErrImportNotFound = "M0001"
	ErrImportCycle    = "M0002"

	// Type checker errors (T prefix)
	ErrTypeMismatch       = "T0001"
	ErrUndefinedSymbol    = "T0002"
	ErrArityMismatch      = "T0003"
	ErrNonExhaustiveMatch = "T0004"
	ErrDuplicateField     = "T0005"
	ErrMissingField       = "T0006"
	ErrUnknownVariant     = "T0007"
	ErrInvalidFieldAccess = "T0008"
	ErrNotCallable        = "T0009"
	ErrIndexOutOfBounds   = "T0010"
	ErrInvalidAssignment  = "T0011"
	ErrInvalidOperation   = "T0012"

	// Ownership errors (O prefix)
	ErrUseAfterMove       = "O0001"
	ErrBorrowConflict     = "O0002"
	ErrEscapingBorrow     = "O0003"
	ErrUseOfUninitialized = "O0004"
	ErrParallelAccess     = "O0005"

	// Structural errors (S prefix) abort analysis immediately
	ErrNoMainFunction    = "S0001"
	ErrDuplicateTopLevel = "S0002"

	// Internal invariant violations surfaced as diagnostics
	ErrInternal = "X0001"
)
