package export

import (
	"errors"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Encoder renders plain text into a downloadable document.
type Encoder interface {
	Encode(text string) ([]byte, error)
	ContentType() string
	Extension() string
}

type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry returns the pdf, xlsx and docx encoders.
func NewRegistry() *Registry {
	r := &Registry{encoders: map[string]Encoder{}}
	for _, e := range []Encoder{NewPDFEncoder(), NewXLSXEncoder(), NewDOCXEncoder()} {
		r.encoders[e.Extension()] = e
	}
	return r
}

func (r *Registry) Lookup(format string) (Encoder, error) {
	e, ok := r.encoders[strings.ToLower(strings.TrimPrefix(format, "."))]
	if !ok {
		return nil, ErrUnknownFormat
	}
	return e, nil
}

func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.encoders))
	for f := range r.encoders {
		formats = append(formats, f)
	}
	return formats
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
