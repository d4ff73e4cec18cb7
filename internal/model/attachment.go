package model

import "time"

// Attachment is a file attached to a purchase request.
type Attachment struct {
	ID         int64     `json:"id"`
	RequestID  int64     `json:"request_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy int64     `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Uploader *User `json:"uploader,omitempty"`
}
