package domain

import (
	"fmt"
	"io"
)

const (
	PDFMediaType = "application/pdf"
	PDFExtension = ".pdf"

	// PickerAccept is the accept filter handed to file pickers.
	PickerAccept = PDFExtension + "," + PDFMediaType
)

// User-facing workflow messages
const (
	MsgPickerNotPDF   = "Please select a PDF file only."
	MsgDropNotPDF     = "Please use a PDF file only."
	MsgNoFileSelected = "Please select a PDF file first."
	MsgUploadSuccess  = "Document uploaded successfully."
	MsgUploadFailed   = "Upload failed."
)

const (
	SubmitLabelIdle      = "Submit"
	SubmitLabelUploading = "Uploading…"
)

// UploadPhase gates whether a new submission may start
type UploadPhase string

const (
	PhaseIdle      UploadPhase = "idle"
	PhaseUploading UploadPhase = "uploading"
)

// File is a candidate offered through a picker or a drop. Once it passes
// PDF validation the controller holds it as the selected file.
type File struct {
	Name      string
	MediaType string
	Size      int64

	open func() (io.ReadCloser, error)
}

// NewFile creates a file descriptor whose payload is produced by open.
func NewFile(name, mediaType string, size int64, open func() (io.ReadCloser, error)) *File {
	return &File{
		Name:      name,
		MediaType: mediaType,
		Size:      size,
		open:      open,
	}
}

// Open returns a fresh reader over the file payload. It can be called once
// per upload attempt.
func (f *File) Open() (io.ReadCloser, error) {
	if f == nil || f.open == nil {
		return nil, ErrNoPayload
	}
	return f.open()
}

// UIMessage holds the feedback shown after an action. At most one of the
// two texts is set.
type UIMessage struct {
	ErrorText   string `json:"error,omitempty"`
	SuccessText string `json:"success,omitempty"`
}

// IsEmpty reports whether no message is set
func (m UIMessage) IsEmpty() bool {
	return m.ErrorText == "" && m.SuccessText == ""
}

// FileSummary is the preview of the selected file
type FileSummary struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
	SizeLabel string `json:"size_label"`
}

// SummarizeFile builds the preview shown for a selected file.
func SummarizeFile(f *File) *FileSummary {
	if f == nil {
		return nil
	}
	return &FileSummary{
		Name:      f.Name,
		MediaType: f.MediaType,
		Size:      f.Size,
		SizeLabel: FormatSizeKB(f.Size),
	}
}

// FormatSizeKB renders a byte count as kilobytes with one decimal, e.g. "12.5 KB".
func FormatSizeKB(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

// Snapshot is the externally readable workflow state after a transition.
type Snapshot struct {
	File         *FileSummary `json:"file,omitempty"`
	Message      UIMessage    `json:"message"`
	Phase        UploadPhase  `json:"phase"`
	CanSubmit    bool         `json:"can_submit"`
	SubmitLabel  string       `json:"submit_label"`
	PickerValue  string       `json:"picker_value"`
	PickerAccept string       `json:"picker_accept"`
}

// HasFile reports whether a file is staged for submission
func (s Snapshot) HasFile() bool {
	return s.File != nil
}

// UploadResult is what an upload client reports for an accepted document.
type UploadResult struct {
	Backend       string `json:"backend"`
	Location      string `json:"location,omitempty"`
	Filename      string `json:"filename,omitempty"`
	DocName       string `json:"doc_name,omitempty"`
	ChunksIndexed int    `json:"chunks_indexed,omitempty"`
}
