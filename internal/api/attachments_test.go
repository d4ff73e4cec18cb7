package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deciflow/deciflow/internal/files"
	"github.com/deciflow/deciflow/internal/model"
)

func pdfFile(size int) files.File {
	return files.File{
		Name:     "quote.pdf",
		Size:     int64(size),
		MimeType: "application/pdf",
		Content:  bytes.NewReader(bytes.Repeat([]byte("a"), size)),
	}
}

func TestProgressReaderReportsQuarters(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 400)
	var got []int
	pr := &progressReader{
		r:      bytes.NewReader(data),
		total:  400,
		report: func(p int) { got = append(got, p) },
	}

	buf := make([]byte, 100)
	for {
		if _, err := pr.Read(buf); err == io.EOF {
			break
		}
	}

	assert.Equal(t, []int{25, 50, 75, 100}, got)
}

func TestProgressNonDecreasing(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 997)
	var got []int
	pr := &progressReader{
		r:      bytes.NewReader(data),
		total:  997,
		report: func(p int) { got = append(got, p) },
	}
	io.CopyBuffer(io.Discard, pr, make([]byte, 13))

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i], got[i-1])
	}
	assert.Equal(t, 100, got[len(got)-1])
}

func TestUploadResolvesWithParsedAttachment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/requests/3/attachments", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "quote.pdf", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{
			"data": model.Attachment{
				ID:        42,
				RequestID: 3,
				FileName:  "quote.pdf",
				FileSize:  2048,
				MimeType:  "application/pdf",
			},
		})
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	var progress []int
	att, err := svc.Upload(context.Background(), 3, pdfFile(2048), func(p int) {
		progress = append(progress, p)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), att.ID)
	assert.Equal(t, "quote.pdf", att.FileName)

	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestUploadAcceptsBareAttachmentResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Attachment{ID: 7, FileName: "quote.pdf"})
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	att, err := svc.Upload(context.Background(), 3, pdfFile(64), nil)

	require.NoError(t, err)
	assert.Equal(t, int64(7), att.ID)
}

func TestUploadRejectsOversizedFileBeforeNetwork(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	f := files.File{
		Name:     "huge.pdf",
		Size:     11 << 20,
		MimeType: "application/pdf",
		Content:  strings.NewReader(""),
	}
	_, err := svc.Upload(context.Background(), 3, f, nil)

	assert.ErrorIs(t, err, files.ErrFileTooLarge)
	assert.Zero(t, calls)
}

func TestUploadRejectsDisallowedTypeBeforeNetwork(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	f := files.File{
		Name:     "notes.txt",
		Size:     128,
		MimeType: "text/plain",
		Content:  strings.NewReader("hello"),
	}
	_, err := svc.Upload(context.Background(), 3, f, nil)

	assert.ErrorIs(t, err, files.ErrFileTypeNotAllowed)
	assert.Zero(t, calls)
}

func TestUploadCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Upload(ctx, 3, pdfFile(64), nil)
	assert.ErrorIs(t, err, ErrUploadCancelled)
}

func TestUploadFailureCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "Virus scan failed"})
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	_, err := svc.Upload(context.Background(), 3, pdfFile(64), nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Virus scan failed", apiErr.Message)
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/attachments/42", r.URL.Path)
		w.Write([]byte("%PDF-1.7 ..."))
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	data, err := svc.Download(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 ..."), data)
}

func TestListScopedToRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/requests/7/attachments", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Attachment{
			{ID: 1, RequestID: 7, FileName: "quote.pdf", FileSize: 2048},
		})
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	atts, err := svc.List(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "quote.pdf", atts[0].FileName)
}

func TestDeleteAttachment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/attachments/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewAttachmentsService(New(server.URL, authedStore("tok")))
	assert.NoError(t, svc.Delete(context.Background(), 9))
}
