// Package render prints client search results.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/clientdb/internal/common"
	"github.com/dmitrijs2005/clientdb/internal/models"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Validate reports whether format is accepted by Write.
func Validate(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, "":
		return nil
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownFormat, format)
	}
}

// Write prints records to w in the given format. An unknown format yields
// common.ErrUnknownFormat and writes nothing.
func Write(w io.Writer, format string, records []models.ClientRecord) error {
	if err := Validate(format); err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	default:
		return writeText(w, records)
	}
}

func writeText(w io.Writer, records []models.ClientRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tPHONES")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.FirstName, r.LastName, r.Email, r.Phones)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, records []models.ClientRecord) error {
	if records == nil {
		records = []models.ClientRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeYAML(w io.Writer, records []models.ClientRecord) error {
	if records == nil {
		records = []models.ClientRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
