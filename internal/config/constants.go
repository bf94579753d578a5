package config

// Default locations for the archive and its extraction directory
const (
	// DefaultZipPath is the archive read when ZIP_PATH is not set
	DefaultZipPath = "./books.zip"

	// DefaultExtractSubdir is joined onto the working directory when EXTRACT_DIR is not set
	DefaultExtractSubdir = "Data/extracted"

	// DefaultTextWidth is the console wrap width used for the text rendering
	DefaultTextWidth = 80

	// MinTextWidth is the narrowest wrap width accepted
	MinTextWidth = 20
)
