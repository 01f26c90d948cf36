package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/marcus/tasklist/internal/models"
	"gopkg.in/yaml.v3"
)

var sample = []models.Task{
	{Text: "Buy milk", Completed: true, Assignee: "Alice"},
	{Text: "Wash car, then dry", Completed: false, Assignee: "Bob"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YML", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"pdf", FormatPDF, false},
		{"csv", FormatCSV, false},
		{"docx", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseFormat(%q) = (%q, %v)", tc.in, got, err)
		}
	}
}

func TestExportJSONMatchesStorageShape(t *testing.T) {
	data, err := Export(sample, FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var got []models.Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Errorf("decoded = %+v, want %+v", got, sample)
	}
}

func TestExportYAML(t *testing.T) {
	data, err := Export(sample, FormatYAML)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), "assignee: Alice") {
		t.Errorf("yaml missing assignee field:\n%s", data)
	}
	var got []models.Task
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Errorf("decoded = %+v, want %+v", got, sample)
	}
}

func TestExportCSVQuotesCommas(t *testing.T) {
	data, err := Export(sample, FormatCSV)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2", len(lines))
	}
	if lines[2] != `2,"Wash car, then dry",Bob,false` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestExportMarkdown(t *testing.T) {
	data, err := Export(sample, FormatMarkdown)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), "- [x] Buy milk") {
		t.Errorf("markdown missing checked item:\n%s", data)
	}
}

func TestExportPDF(t *testing.T) {
	for _, tasks := range [][]models.Task{sample, nil} {
		data, err := Export(tasks, FormatPDF)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
		}
	}
}

func TestExportPDFOutsideLatin1(t *testing.T) {
	tasks := []models.Task{
		{Text: "牛乳を買う", Assignee: "花子"},
		{Text: "Café ☕", Assignee: "Zoë", Completed: true},
	}
	data, err := Export(tasks, FormatPDF)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestExportNilIsEmptyArray(t *testing.T) {
	data, err := Export(nil, FormatJSON)
	if err != nil || string(data) != "[]" {
		t.Errorf("Export(nil, json) = (%s, %v), want []", data, err)
	}
}
