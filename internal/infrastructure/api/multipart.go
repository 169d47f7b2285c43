package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/pawshop/storefront/internal/core/ports"
)

// form accumulates a multipart body. The first write error sticks and is
// reported by close.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *form) field(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.w.WriteField(name, value)
}

// optional writes the field only when value is not empty.
func (f *form) optional(name, value string) {
	if value != "" {
		f.field(name, value)
	}
}

func (f *form) number(name string, v int64) {
	f.field(name, strconv.FormatInt(v, 10))
}

func (f *form) price(name string, v float64) {
	f.field(name, strconv.FormatFloat(v, 'f', -1, 64))
}

func (f *form) flag(name string, v bool) {
	if v {
		f.field(name, "1")
		return
	}
	f.field(name, "0")
}

func (f *form) image(up *ports.Upload) {
	if f.err != nil || up == nil || len(up.Data) == 0 {
		return
	}
	part, err := f.w.CreateFormFile("image", up.Filename)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(up.Data)
}

// build finalises the body into a request description.
func (f *form) build(endpoint, method, path string) (call, error) {
	if f.err == nil {
		f.err = f.w.Close()
	}
	if f.err != nil {
		return call{}, fmt.Errorf("%s: build form: %w", endpoint, f.err)
	}
	return call{
		endpoint:    endpoint,
		method:      method,
		path:        path,
		body:        bytes.NewReader(f.buf.Bytes()),
		contentType: f.w.FormDataContentType(),
	}, nil
}
