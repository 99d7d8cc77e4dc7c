package models

import (
	"encoding/json"
	"testing"
)

func TestDecodeAdditionalInfoInlineObject(t *testing.T) {
	raw := json.RawMessage(`{"replacement_person":"Budi","delegated_task":"Weekly report"}`)
	info, ok := DecodeAdditionalInfo(raw)
	if !ok {
		t.Fatal("inline object should decode")
	}
	if info.ReplacementPerson != "Budi" || info.DelegatedTask != "Weekly report" {
		t.Fatalf("unexpected document: %+v", info)
	}
}

func TestDecodeAdditionalInfoDoubleEncoded(t *testing.T) {
	inner := `{"replacement_person":"Sari","delegated_task":"Payroll"}`
	raw, _ := json.Marshal(inner)
	info, ok := DecodeAdditionalInfo(raw)
	if !ok {
		t.Fatal("double-encoded object should decode")
	}
	if info.ReplacementPerson != "Sari" || info.DelegatedTask != "Payroll" {
		t.Fatalf("unexpected document: %+v", info)
	}
}

func TestDecodeAdditionalInfoMalformed(t *testing.T) {
	info, ok := DecodeAdditionalInfo(json.RawMessage(`{"replacement_person":`))
	if ok {
		t.Fatal("malformed payload reported as decoded")
	}
	if info != (AdditionalInfo{}) {
		t.Fatalf("malformed payload should substitute the empty document, got %+v", info)
	}
}

func TestDecodeAdditionalInfoEmpty(t *testing.T) {
	if _, ok := DecodeAdditionalInfo(nil); ok {
		t.Fatal("empty raw reported as decoded")
	}
	if _, ok := DecodeAdditionalInfo(json.RawMessage(`""`)); ok {
		t.Fatal("empty string payload reported as decoded")
	}
}
