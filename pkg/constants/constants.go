// Package constants provides shared constants used throughout the csvsync codebase.
// This includes delimited-text conventions, file permissions and defaults
// that should be consistent across the library and the CLI.
package constants

// Delimited text conventions
const (
	// LineTerminator joins output records. Inputs may use LF or CRLF; output is always CRLF.
	LineTerminator = "\r\n"

	// DefaultComma is the field separator used when none is configured
	DefaultComma = ','

	// DoubleQuote is the default quote character
	DoubleQuote = '"'

	// SingleQuote is the alternative quote character recognized on input
	SingleQuote = '\''

	// IdentifierSeparators lists the characters that split a free-text identifier block
	IdentifierSeparators = ",; \t\r\n"

	// ChangeColumn is the leading column of an exported diff
	ChangeColumn = "change"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default values
const (
	// DefaultSchemaMode is the upsert output schema when none is specified
	DefaultSchemaMode = "original"

	// DefaultDuplicatePolicy resolves duplicate keys when none is specified
	DefaultDuplicatePolicy = "last"

	// DefaultConfigName is the config file base name looked up in $HOME and the working directory
	DefaultConfigName = ".csvsync"

	// MaxPreviewRows caps the rows rendered by table reports
	MaxPreviewRows = 50
)
