// Package codec converts drafts to request bodies and API payloads to
// entities.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/rogersnm/dolphin/internal/model"
)

const (
	// ImageField is the multipart field carrying a new image.
	ImageField = "image"
	// OverrideField tells the server-side router which verb a multipart
	// POST stands for.
	OverrideField = "_method"
	// DefaultOverride is used when Options.Override is empty.
	DefaultOverride = "PATCH"
)

type Kind int

const (
	KindNone Kind = iota
	KindJSON
	KindMultipart
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindMultipart:
		return "multipart"
	default:
		return "none"
	}
}

// Body is an encoded request body.
type Body struct {
	Kind        Kind
	ContentType string
	Data        []byte
}

func (b Body) Reader() io.Reader {
	if b.Kind == KindNone {
		return nil
	}
	return bytes.NewReader(b.Data)
}

type Options struct {
	ForUpdate bool
	Override  string
}

var formEncoder = schema.NewEncoder()

// Encode builds the request body for a draft. A draft with a new file is
// sent as multipart form data; anything else is sent as flat JSON of the
// fields struct. An image that is only a URL is never sent.
func Encode(fields any, img model.Image, opts Options) (Body, error) {
	if !img.IsUpload() {
		return JSON(fields)
	}
	return multipartBody(fields, img.File, opts)
}

// JSON encodes v as a JSON body.
func JSON(v any) (Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Body{}, errors.Wrap(err, "marshaling request")
	}
	return Body{Kind: KindJSON, ContentType: "application/json", Data: data}, nil
}

// Form encodes fields as multipart form data without a file. The settings
// endpoint only accepts form data.
func Form(fields any) (Body, error) {
	return multipartBody(fields, nil, Options{})
}

func multipartBody(fields any, file *model.File, opts Options) (Body, error) {
	values := url.Values{}
	if err := formEncoder.Encode(fields, values); err != nil {
		return Body{}, errors.Wrap(err, "encoding form fields")
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, k := range keys {
		for _, v := range values[k] {
			if err := w.WriteField(k, v); err != nil {
				return Body{}, errors.Wrapf(err, "writing field %s", k)
			}
		}
	}
	if opts.ForUpdate {
		override := opts.Override
		if override == "" {
			override = DefaultOverride
		}
		if err := w.WriteField(OverrideField, override); err != nil {
			return Body{}, errors.Wrap(err, "writing method override")
		}
	}
	if file != nil {
		part, err := w.CreatePart(fileHeader(file.Name))
		if err != nil {
			return Body{}, errors.Wrap(err, "creating file part")
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return Body{}, errors.Wrapf(err, "reading %s", file.Name)
		}
	}
	if err := w.Close(); err != nil {
		return Body{}, errors.Wrap(err, "closing multipart body")
	}
	return Body{Kind: KindMultipart, ContentType: w.FormDataContentType(), Data: buf.Bytes()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(name string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		ImageField, quoteEscaper.Replace(filepath.Base(name))))
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	return h
}
