package holiday

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"gopkg.in/yaml.v3"
)

// DecodeFile reads a holiday list of the form
//
//	holidays:
//	  - name: Diwali
//	    date: 2025-10-21
//	    type: fixed
func DecodeFile(r io.Reader) (holiday.ImportRequest, error) {
	var req holiday.ImportRequest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return req, nil
		}
		return holiday.ImportRequest{}, fmt.Errorf("decode holiday file: %w", err)
	}
	return req, nil
}
