package services

import (
	"reflect"
	"testing"
)

func TestExtractorExtract(t *testing.T) {
	e := NewExtractor(testLogger())

	tests := []struct {
		name     string
		message  string
		upi      []string
		accounts []string
		ifsc     []string
		phones   []string
		links    []string
	}{
		{
			name:     "upi id",
			message:  "pay to scammer@upi now",
			upi:      []string{"scammer@upi"},
			accounts: []string{},
			ifsc:     []string{},
			phones:   []string{},
			links:    []string{},
		},
		{
			name:     "ten digits land in both phone and account lists",
			message:  "call 9876543210 for details",
			upi:      []string{},
			accounts: []string{"9876543210"},
			ifsc:     []string{},
			phones:   []string{"9876543210"},
			links:    []string{},
		},
		{
			name:     "long account number is not a phone",
			message:  "transfer to 123456789012",
			upi:      []string{},
			accounts: []string{"123456789012"},
			ifsc:     []string{},
			phones:   []string{},
			links:    []string{},
		},
		{
			name:     "ifsc code",
			message:  "branch code SBIN0001234",
			upi:      []string{},
			accounts: []string{},
			ifsc:     []string{"SBIN0001234"},
			phones:   []string{},
			links:    []string{},
		},
		{
			name:     "phishing link",
			message:  "visit http://fake-bank.example/login immediately",
			upi:      []string{},
			accounts: []string{},
			ifsc:     []string{},
			phones:   []string{},
			links:    []string{"http://fake-bank.example/login"},
		},
		{
			name:     "multiple entity types",
			message:  "send to fraud@ybl or account 9876543210, IFSC HDFC0ABCD12, see https://scam.example",
			upi:      []string{"fraud@ybl"},
			accounts: []string{"9876543210"},
			ifsc:     []string{"HDFC0ABCD12"},
			phones:   []string{"9876543210"},
			links:    []string{"https://scam.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.message)
			if !reflect.DeepEqual(got.UPIIDs, tt.upi) {
				t.Errorf("UPIIDs = %v, want %v", got.UPIIDs, tt.upi)
			}
			if !reflect.DeepEqual(got.BankAccounts, tt.accounts) {
				t.Errorf("BankAccounts = %v, want %v", got.BankAccounts, tt.accounts)
			}
			if !reflect.DeepEqual(got.IFSCCodes, tt.ifsc) {
				t.Errorf("IFSCCodes = %v, want %v", got.IFSCCodes, tt.ifsc)
			}
			if !reflect.DeepEqual(got.PhoneNumbers, tt.phones) {
				t.Errorf("PhoneNumbers = %v, want %v", got.PhoneNumbers, tt.phones)
			}
			if !reflect.DeepEqual(got.PhishingLinks, tt.links) {
				t.Errorf("PhishingLinks = %v, want %v", got.PhishingLinks, tt.links)
			}
		})
	}
}

func TestExtractorEmptyTextYieldsNonNilLists(t *testing.T) {
	e := NewExtractor(testLogger())

	got := e.Extract("")
	for name, list := range map[string][]string{
		"UPIIDs":        got.UPIIDs,
		"BankAccounts":  got.BankAccounts,
		"IFSCCodes":     got.IFSCCodes,
		"PhoneNumbers":  got.PhoneNumbers,
		"PhishingLinks": got.PhishingLinks,
	} {
		if list == nil {
			t.Errorf("%s is nil, want empty slice", name)
		}
		if len(list) != 0 {
			t.Errorf("%s = %v, want empty", name, list)
		}
	}

	if got.Total() != 0 {
		t.Errorf("Total() = %d, want 0", got.Total())
	}
}

func TestExtractorDuplicatesPreserved(t *testing.T) {
	e := NewExtractor(testLogger())

	got := e.Extract("call 9876543210 or 9876543210")
	want := []string{"9876543210", "9876543210"}
	if !reflect.DeepEqual(got.PhoneNumbers, want) {
		t.Errorf("PhoneNumbers = %v, want %v", got.PhoneNumbers, want)
	}
}
