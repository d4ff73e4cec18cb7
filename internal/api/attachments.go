package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/deciflow/deciflow/internal/files"
	"github.com/deciflow/deciflow/internal/model"
)

// ErrUploadCancelled marks an upload aborted by the user, as opposed to one
// that failed.
var ErrUploadCancelled = errors.New("upload cancelled")

// AttachmentsService is the client for request attachments, including the
// one operation in the whole client with real mechanics: the progress
// reporting upload.
type AttachmentsService struct {
	gw *Gateway
}

func NewAttachmentsService(gw *Gateway) *AttachmentsService {
	return &AttachmentsService{gw: gw}
}

// List returns the attachments of a request.
func (s *AttachmentsService) List(ctx context.Context, requestID int64) ([]model.Attachment, error) {
	var atts []model.Attachment
	if err := s.gw.Get(ctx, fmt.Sprintf("/v1/requests/%d/attachments", requestID), &atts); err != nil {
		return nil, err
	}
	return atts, nil
}

// Upload sends the file as multipart form data and reports progress through
// onProgress as a 0-100 integer, monotonically non-decreasing. Size and type
// violations are rejected before any network attempt. Cancelling ctx aborts
// the transfer and surfaces ErrUploadCancelled.
func (s *AttachmentsService) Upload(ctx context.Context, requestID int64, f files.File, onProgress func(int)) (*model.Attachment, error) {
	if err := files.Check(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(fileHeader(f.Name, f.MimeType))
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	body := &progressReader{
		r:      &buf,
		total:  int64(buf.Len()),
		report: onProgress,
	}

	var raw json.RawMessage
	path := fmt.Sprintf("/v1/requests/%d/attachments", requestID)
	if err := s.gw.Do(ctx, http.MethodPost, path, body, w.FormDataContentType(), &raw); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil, ErrUploadCancelled
		}
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return parseAttachment(raw)
}

// Download fetches the attachment content for saving on the user's side.
func (s *AttachmentsService) Download(ctx context.Context, id int64) ([]byte, error) {
	return s.gw.Bytes(ctx, fmt.Sprintf("/v1/attachments/%d", id))
}

// Delete removes an attachment.
func (s *AttachmentsService) Delete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, fmt.Sprintf("/v1/attachments/%d", id), nil)
}

// parseAttachment accepts both a bare attachment object and a {data: ...}
// wrapper, which is what the backend actually returns.
func parseAttachment(raw json.RawMessage) (*model.Attachment, error) {
	var wrapper struct {
		Data *model.Attachment `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Data != nil && wrapper.Data.ID != 0 {
		return wrapper.Data, nil
	}
	var att model.Attachment
	if err := json.Unmarshal(raw, &att); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}
	return &att, nil
}

func fileHeader(name, mimeType string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	h.Set("Content-Type", mimeType)
	return h
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(s)
}

// progressReader counts bytes as the transport consumes the body and turns
// them into percentage callbacks. Percentages repeat only as snapshots and
// never decrease.
type progressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	last   int
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		if p.report != nil && p.total > 0 {
			pct := int(math.Round(float64(p.loaded) / float64(p.total) * 100))
			if pct > 100 {
				pct = 100
			}
			if pct != p.last {
				p.last = pct
				p.report(pct)
			}
		}
	}
	return n, err
}
