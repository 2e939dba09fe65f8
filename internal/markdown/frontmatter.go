package markdown

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Parse reads YAML frontmatter and body from r into T.
func Parse[T any](r io.Reader) (T, string, error) {
	var meta T
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return meta, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, strings.TrimSpace(string(body)), nil
}

// Marshal serializes meta as YAML frontmatter followed by body.
func Marshal[T any](meta T, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// Draft is the file form of an editable record. Image is a local path to a
// new image; leaving it empty keeps the current one.
type Draft[F any] struct {
	Fields F      `yaml:",inline"`
	Image  string `yaml:"image,omitempty"`
}

const draftHint = "Edit the fields above and save. Set image to a local file path to upload a new image."

func WriteDraft[F any](path string, d Draft[F]) error {
	data, err := Marshal(d, draftHint)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ReadDraft parses a draft file. The body is ignored.
func ReadDraft[F any](path string) (Draft[F], error) {
	f, err := os.Open(path)
	if err != nil {
		return Draft[F]{}, fmt.Errorf("reading draft: %w", err)
	}
	defer f.Close()
	d, _, err := Parse[Draft[F]](f)
	return d, err
}

// Batch is the file form of several drafts created together.
type Batch[F any] struct {
	Items []Draft[F] `yaml:"items"`
}

// ReadBatch parses the items list of a batch file. A file without one, such
// as a single draft, yields no drafts.
func ReadBatch[F any](path string) ([]Draft[F], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	defer f.Close()
	b, _, err := Parse[Batch[F]](f)
	if err != nil {
		return nil, err
	}
	return b.Items, nil
}
