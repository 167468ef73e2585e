package nmi

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestParseResponse(t *testing.T) {
	body := "response=1\nresponse_code=100\nresponsetext=SUCCESS\ntransaction_id=1234567890"
	fields := ParseResponse(body)

	want := map[string]string{
		"response":       "1",
		"response_code":  "100",
		"responsetext":   "SUCCESS",
		"transaction_id": "1234567890",
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("ParseResponse = %v, want %v", fields, want)
	}
}

func TestParseResponseCRLF(t *testing.T) {
	fields := ParseResponse("response=1\r\nresponse_code=100")
	if fields["response"] != "1" {
		t.Errorf("response = %q, want 1", fields["response"])
	}
	if fields["response_code"] != "100" {
		t.Errorf("response_code = %q, want 100", fields["response_code"])
	}
}

func TestParseResponseValueContainsEquals(t *testing.T) {
	fields := ParseResponse("avsresponse=street=match, zip=match")
	if got := fields["avsresponse"]; got != "street=match, zip=match" {
		t.Errorf("avsresponse = %q, want the remainder after the first '='", got)
	}
}

func TestParseResponseLineWithoutEquals(t *testing.T) {
	fields := ParseResponse("SERVICE UNAVAILABLE")
	value, ok := fields["SERVICE UNAVAILABLE"]
	if !ok {
		t.Fatal("line without '=' should become a key")
	}
	if value != "" {
		t.Errorf("value = %q, want empty string", value)
	}
}

func TestParseResponseRepeatedKeyOverwrites(t *testing.T) {
	fields := ParseResponse("code=1\ncode=2")
	if fields["code"] != "2" {
		t.Errorf("code = %q, want the later line to win", fields["code"])
	}
}

// Reconstructing canonical key=value lines from a parsed mapping and
// re-parsing them must yield the same mapping.
func TestParseResponseRoundTrip(t *testing.T) {
	first := ParseResponse("response=1\r\ntransaction_id=987\nnote=a=b=c\nempty=")

	lines := make([]string, 0, len(first))
	for key, value := range first {
		lines = append(lines, key+"="+value)
	}
	sort.Strings(lines)

	second := ParseResponse(strings.Join(lines, "\n"))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip mismatch: %v != %v", first, second)
	}
}
