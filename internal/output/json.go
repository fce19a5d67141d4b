package output

import (
	"encoding/json"
	"io"

	"github.com/buemura/nscan/pkg/types"
)

// JSONFormatter renders records as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, records []types.ScanRecord) error {
	if records == nil {
		records = []types.ScanRecord{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
