package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lattiq/mailcloud/internal/core"
)

const contentTypeJSON = "application/json"

type jsonBody struct {
	value any
}

// JSONBody encodes v as a JSON document without HTML escaping.
func JSONBody(v any) Body {
	return jsonBody{value: v}
}

func (b jsonBody) Encode() (string, io.Reader, error) {
	data, err := core.MarshalJSON(b.value)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return contentTypeJSON, bytes.NewReader(data), nil
}

type formField struct {
	name  string
	value string
}

// Form is a multipart/form-data body. Text fields are written in the order
// they were added; files follow as attachment1..N, preceded by an
// "attachments" field holding their count.
type Form struct {
	fields []formField
	files  []string
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends a text field. Empty values are skipped at encode time.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part read from path.
func (f *Form) AddFile(path string) *Form {
	f.files = append(f.files, path)
	return f
}

// Encode implements Body.
func (f *Form) Encode() (string, io.Reader, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if field.value == "" {
			continue
		}
		if err := w.WriteField(field.name, field.value); err != nil {
			return "", nil, err
		}
	}

	if len(f.files) > 0 {
		if err := w.WriteField("attachments", strconv.Itoa(len(f.files))); err != nil {
			return "", nil, err
		}
		for i, path := range f.files {
			if err := writeFile(w, i+1, path); err != nil {
				return "", nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), &buf, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// writeFile streams one attachment. The file is closed before returning on
// every path.
func writeFile(w *multipart.Writer, n int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &core.AttachmentError{Path: path, Err: err}
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return &core.AttachmentError{Path: path, Err: err}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return &core.AttachmentError{Path: path, Err: err}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="attachment%d"; filename="%s"`,
		n, quoteEscaper.Replace(filepath.Base(path))))
	h.Set("Content-Type", mtype.String())

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return &core.AttachmentError{Path: path, Err: err}
	}
	return nil
}
