package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/deciflow/deciflow/internal/api"
	"github.com/deciflow/deciflow/internal/files"
)

// FileUpload is the attachment picker with a progress bar. The file is read
// into memory through a FileReader before it is sent, so the size and type
// checks run before any bytes leave the browser.
type FileUpload struct {
	app.Compo

	RequestID  int64
	OnUploaded func(app.Context)

	uploading bool
	progress  int
	errMsg    string
	cancel    context.CancelFunc
}

func (u *FileUpload) onPick(ctx app.Context, e app.Event) {
	picked := e.Get("target").Get("files")
	if picked.Get("length").Int() == 0 {
		return
	}
	jsFile := picked.Index(0)
	name := jsFile.Get("name").String()
	size := int64(jsFile.Get("size").Int())
	mimeType := jsFile.Get("type").String()
	e.Get("target").Set("value", "")

	if err := files.CheckSize(size); err != nil {
		u.errMsg = fmt.Sprintf("%s is too large (%d bytes).", name, size)
		return
	}
	if err := files.CheckType(mimeType); err != nil {
		u.errMsg = fmt.Sprintf("%s files are not accepted.", mimeType)
		return
	}
	u.errMsg = ""

	reader := app.Window().Get("FileReader").New()
	var onLoad, onError app.Func
	release := func() {
		onLoad.Release()
		onError.Release()
	}
	onLoad = app.FuncOf(func(this app.Value, args []app.Value) any {
		defer release()
		buf := app.Window().Get("Uint8Array").New(reader.Get("result"))
		data := make([]byte, buf.Get("length").Int())
		app.CopyBytesToGo(data, buf)
		u.start(ctx, files.File{
			Name:     name,
			Size:     size,
			MimeType: mimeType,
			Content:  bytes.NewReader(data),
		})
		return nil
	})
	onError = app.FuncOf(func(this app.Value, args []app.Value) any {
		defer release()
		ctx.Dispatch(func(ctx app.Context) {
			u.errMsg = "Could not read the selected file."
		})
		return nil
	})
	reader.Set("onload", onLoad)
	reader.Set("onerror", onError)
	reader.Call("readAsArrayBuffer", jsFile)
}

func (u *FileUpload) start(ctx app.Context, f files.File) {
	uploadCtx, cancel := context.WithCancel(context.Background())

	ctx.Dispatch(func(ctx app.Context) {
		u.uploading = true
		u.progress = 0
		u.cancel = cancel
	})

	ctx.Async(func() {
		_, err := attachments.Upload(uploadCtx, u.RequestID, f, func(pct int) {
			ctx.Dispatch(func(ctx app.Context) {
				u.progress = pct
			})
		})
		cancel()
		ctx.Dispatch(func(ctx app.Context) {
			u.uploading = false
			u.cancel = nil
			switch {
			case errors.Is(err, api.ErrUploadCancelled):
				u.errMsg = "Upload cancelled."
			case err != nil:
				u.errMsg = err.Error()
			default:
				u.errMsg = ""
				if u.OnUploaded != nil {
					u.OnUploaded(ctx)
				}
			}
		})
	})
}

func (u *FileUpload) Render() app.UI {
	return app.Div().Class("file-upload").Body(
		errorBanner(u.errMsg),
		app.If(u.uploading, func() app.UI {
			return app.Div().Class("upload-progress").Body(
				app.Progress().Max(100).Value(u.progress),
				app.Span().Text(fmt.Sprintf("%d%%", u.progress)),
				app.Button().Class("btn btn-link").Text("Cancel").
					OnClick(func(ctx app.Context, e app.Event) {
						if u.cancel != nil {
							u.cancel()
						}
					}),
			)
		}).Else(func() app.UI {
			return app.Label().Class("upload-picker").Body(
				app.Text("Attach a file"),
				app.Input().Type("file").OnChange(u.onPick),
			)
		}),
	)
}

// saveFile hands downloaded bytes to the browser as a named download.
func saveFile(name, mimeType string, data []byte) {
	buf := app.Window().Get("Uint8Array").New(len(data))
	app.CopyBytesToJS(buf, data)
	blob := app.Window().Get("Blob").New([]any{buf}, map[string]any{"type": mimeType})
	url := app.Window().Get("URL").Call("createObjectURL", blob)
	anchor := app.Window().Get("document").Call("createElement", "a")
	anchor.Set("href", url)
	anchor.Set("download", name)
	anchor.Call("click")
	app.Window().Get("URL").Call("revokeObjectURL", url)
}
