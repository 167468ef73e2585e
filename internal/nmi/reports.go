package nmi

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// MerchantRecord is one <merchant> element from the v4 merchant report.
// Missing child elements decode to empty strings.
type MerchantRecord struct {
	ID      string `xml:"id" json:"id"`
	Company string `xml:"company" json:"company"`
	DBA     string `xml:"dba" json:"dba"`
}

// UserRecord is one <user> element from the v4 user report.
type UserRecord struct {
	ID        string `xml:"id" json:"id"`
	Username  string `xml:"username" json:"username"`
	FirstName string `xml:"first_name" json:"first_name"`
	LastName  string `xml:"last_name" json:"last_name"`
	Status    string `xml:"status" json:"status"`
}

// ParseMerchantReport collects every <merchant> element from a report body,
// regardless of the surrounding document structure.
func ParseMerchantReport(body string) ([]MerchantRecord, error) {
	records := []MerchantRecord{}
	err := eachElement(body, "merchant", func(decoder *xml.Decoder, start xml.StartElement) error {
		var record MerchantRecord
		if err := decoder.DecodeElement(&record, &start); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("[reports] malformed merchant report: %w", err)
	}
	return records, nil
}

// ParseUserReport collects every <user> element from a report body.
func ParseUserReport(body string) ([]UserRecord, error) {
	records := []UserRecord{}
	err := eachElement(body, "user", func(decoder *xml.Decoder, start xml.StartElement) error {
		var record UserRecord
		if err := decoder.DecodeElement(&record, &start); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("[reports] malformed user report: %w", err)
	}
	return records, nil
}

func eachElement(body, name string, decode func(*xml.Decoder, xml.StartElement) error) error {
	decoder := xml.NewDecoder(strings.NewReader(body))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != name {
			continue
		}
		if err := decode(decoder, start); err != nil {
			return err
		}
	}
}
