package extract

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
)

// FileExtractor reads externally authored process documents. It accepts
// the same element/flow document the LLM produces, as JSON or YAML.
type FileExtractor struct{}

// ExtractFile reads and converts the document at path. The format is
// chosen by extension: .json, .yaml or .yml.
func (FileExtractor) ExtractFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.ErrCodeFileNotFound, "%s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	var res *Result
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		res, err = ReadJSON(f)
	case ".yaml", ".yml":
		res, err = ReadYAML(f)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	res.SourceFile = path
	return res, nil
}

// ReadJSON decodes a wire document from r.
func ReadJSON(r io.Reader) (*Result, error) {
	var w wireProcess
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode process document")
	}
	return wireResult(&w)
}

// ReadYAML decodes a wire document from r.
func ReadYAML(r io.Reader) (*Result, error) {
	var w wireProcess
	if err := yaml.NewDecoder(r).Decode(&w); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode process document")
	}
	return wireResult(&w)
}

func wireResult(w *wireProcess) (*Result, error) {
	p, err := w.toProcess()
	if err != nil {
		return nil, err
	}

	res := &Result{Process: p}
	v := process.Validate(p)
	res.Warnings = append(res.Warnings, v.Warnings...)
	return res, nil
}
