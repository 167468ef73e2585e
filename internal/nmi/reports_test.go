package nmi

import "testing"

const merchantReportFixture = `<?xml version="1.0" encoding="UTF-8"?>
<nm_response>
  <merchant>
    <id>100</id>
    <company>Haus Foods</company>
    <dba>Haus</dba>
  </merchant>
  <merchant>
    <id>101</id>
    <company>Biltong Bros</company>
  </merchant>
</nm_response>`

func TestParseMerchantReport(t *testing.T) {
	records, err := ParseMerchantReport(merchantReportFixture)
	if err != nil {
		t.Fatalf("ParseMerchantReport: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID != "100" || records[0].Company != "Haus Foods" || records[0].DBA != "Haus" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].DBA != "" {
		t.Errorf("dba = %q, want empty string for the missing child", records[1].DBA)
	}
}

func TestParseMerchantReportEmpty(t *testing.T) {
	records, err := ParseMerchantReport("<nm_response></nm_response>")
	if err != nil {
		t.Fatalf("ParseMerchantReport: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestParseMerchantReportMalformed(t *testing.T) {
	if _, err := ParseMerchantReport("<merchant><id>1</id>"); err == nil {
		t.Error("expected an error for truncated XML")
	}
}

func TestParseUserReport(t *testing.T) {
	body := `<nm_response>
  <user>
    <id>7</id>
    <username>lerato</username>
    <first_name>Lerato</first_name>
    <last_name>M</last_name>
    <status>active</status>
  </user>
</nm_response>`

	records, err := ParseUserReport(body)
	if err != nil {
		t.Fatalf("ParseUserReport: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	user := records[0]
	if user.ID != "7" || user.Username != "lerato" || user.FirstName != "Lerato" ||
		user.LastName != "M" || user.Status != "active" {
		t.Errorf("record = %+v", user)
	}
}
