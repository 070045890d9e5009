package http

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNoParcelElements is returned when an uploaded document contains no
// recognisable parcel entries.
var ErrNoParcelElements = errors.New("document contains no parcel elements")

// ParseParcelDocument decodes an uploaded parcel manifest into a list of raw
// records. The expected shape is a root element (Container or Parcels, the
// root name is not enforced) holding repeated Parcel elements; each child of
// a Parcel element becomes one key of the record, with its text content
// trimmed. Field naming inside a Parcel element is left to the normalizer.
func ParseParcelDocument(data []byte) ([]map[string]any, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var records []map[string]any
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "Parcel" {
			continue
		}

		record, err := decodeParcelElement(decoder, start)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoParcelElements
	}

	return records, nil
}

// decodeParcelElement reads the children of one Parcel element into a flat
// key-value record. Nested structure below a field element is ignored; only
// its character data is kept.
func decodeParcelElement(decoder *xml.Decoder, start xml.StartElement) (map[string]any, error) {
	type field struct {
		XMLName xml.Name
		Value   string `xml:",chardata"`
	}
	var element struct {
		Fields []field `xml:",any"`
	}

	if err := decoder.DecodeElement(&element, &start); err != nil {
		return nil, err
	}

	record := make(map[string]any, len(element.Fields))
	for _, f := range element.Fields {
		record[f.XMLName.Local] = strings.TrimSpace(f.Value)
	}

	return record, nil
}
