// Package files holds the client-side attachment checks. They run before any
// upload attempt and are advisory UI gating only; the backend re-validates
// everything.
package files

import (
	"errors"
	"io"
	"regexp"
)

// MaxFileSize is the upload ceiling: 10 MiB.
const MaxFileSize = 10 << 20

// AllowedTypes is the MIME allow-list for attachments: common office,
// image and PDF formats.
var AllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var (
	ErrFileTooLarge       = errors.New("file exceeds the 10 MB limit")
	ErrFileTypeNotAllowed = errors.New("file type is not supported")
)

// File is a file selected for upload: metadata plus its content stream.
type File struct {
	Name     string
	Size     int64
	MimeType string
	Content  io.Reader
}

// CheckSize rejects files over the ceiling.
func CheckSize(size int64) error {
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// CheckType rejects MIME types outside the allow-list.
func CheckType(mimeType string) error {
	for _, t := range AllowedTypes {
		if mimeType == t {
			return nil
		}
	}
	return ErrFileTypeNotAllowed
}

// Check runs both pre-upload checks on a file.
func Check(f File) error {
	if err := CheckSize(f.Size); err != nil {
		return err
	}
	return CheckType(f.MimeType)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidAmount reports whether an amount is a positive number.
func ValidAmount(amount int64) bool {
	return amount > 0
}
