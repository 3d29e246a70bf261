package domain

// RawFile represents opaque bytes handed to a normaliser.
// It is the upload's content before any format processing.
type RawFile struct {
	// FileName is the original file name, extension included.
	FileName string

	// FileType is the recognised source format.
	FileType FileType

	// Content is the raw bytes.
	Content []byte
}
