package validate

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"jobly/internal/core/errs"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const base = "https://jobly.dev/schemas/"

// Schema IDs of the request bodies.
const (
	Login         = base + "login.json"
	UserNew       = base + "user_new.json"
	UserUpdate    = base + "user_update.json"
	CompanyNew    = base + "company_new.json"
	CompanyUpdate = base + "company_update.json"
	JobNew        = base + "job_new.json"
	JobUpdate     = base + "job_update.json"
)

// Validator validates JSON documents against schemas keyed by their $id.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New loads the embedded request schemas.
func New() (*Validator, error) {
	sub, err := fs.Sub(schemaFS, "schemas")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub)
}

// NewFromFS compiles every top-level *.json file of fsys.
func NewFromFS(fsys fs.FS) (*Validator, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("cannot read dir %w", err)
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("cannot read file '%s' %w", e.Name(), err)
		}
		docs = append(docs, string(b))
	}
	return NewValidator(docs)
}

func NewValidator(docs []string) (*Validator, error) {
	type header struct {
		ID string `json:"$id"`
	}
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(docs))}
	for _, doc := range docs {
		var h header
		if err := json.Unmarshal([]byte(doc), &h); err != nil {
			return nil, fmt.Errorf("parse error '%v' in schema: '%s'", err, doc)
		}
		if h.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: '%s'", doc)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s %w", h.ID, err)
		}
		v.schemas[h.ID] = s
	}
	return v, nil
}

// HasSchema reports whether a schema with $id id was loaded.
func (v *Validator) HasSchema(id string) bool {
	_, ok := v.schemas[id]
	return ok
}

// Validate checks body against schema id. A document that does not match
// yields errs.KindInvalidArgument listing every violation.
func (v *Validator) Validate(body []byte, id string) error {
	s, ok := v.schemas[id]
	if !ok {
		return errs.Internal("", fmt.Errorf("there is no schema %s", id))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errs.InvalidArgument("request body is required")
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errs.InvalidArgument(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return errs.InvalidArgument(strings.Join(msgs, "; "))
	}
	return nil
}

// Decode validates body and unmarshals it into dst.
func (v *Validator) Decode(body []byte, id string, dst any) error {
	if err := v.Validate(body, id); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.InvalidArgument(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// DecodeMap validates body and returns its top-level members. Numbers
// become int64 when integral, float64 otherwise.
func (v *Validator) DecodeMap(body []byte, id string) (map[string]any, error) {
	if err := v.Validate(body, id); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	m := map[string]any{}
	if err := dec.Decode(&m); err != nil {
		return nil, errs.InvalidArgument(fmt.Sprintf("invalid JSON body: %v", err))
	}
	for k, val := range m {
		if n, ok := val.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				m[k] = i
			} else if f, err := n.Float64(); err == nil {
				m[k] = f
			}
		}
	}
	return m, nil
}
