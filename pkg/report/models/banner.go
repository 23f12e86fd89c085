package models

// Banner is an optional wide image placed above exported tables, scaled so
// its displayed width matches the table extent.
type Banner struct {
	// Path is the source file path of the image.
	Path string
	// Extension is the file extension including the dot (".png", ".jpg").
	Extension string
	// Data is the raw image payload.
	Data []byte
	// Width is the intrinsic pixel width, or 0 when undecodable.
	Width int
	// Height is the intrinsic pixel height, or 0 when undecodable.
	Height int
}

// ExportDocument is a finished export artifact handed to the caller.
type ExportDocument struct {
	// Data is the binary document payload.
	Data []byte
	// Filename is the suggested download filename, already sanitized.
	Filename string
	// MIME is the document content type.
	MIME string
}
