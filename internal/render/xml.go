package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/EDI-parser/internal/xmlwriter"
)

func writeXML(w io.Writer, report Report) error {
	options := xmlwriter.DefaultGenerateOptions()
	if report.Source != "" {
		options.RootAttributes["source"] = report.Source
	}
	if v := report.Validation; v != nil {
		options.RootAttributes["valid"] = strconv.FormatBool(v.IsValid)
		if len(v.Missing) > 0 {
			options.RootAttributes["missing"] = strings.Join(v.Missing, " ")
		}
	}

	data, err := xmlwriter.GenerateDocumentWithOptions(report.Document, options)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
