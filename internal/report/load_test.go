package report

import (
	"os"
	"path/filepath"
	"testing"
)

func writeResultsFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadResults(t *testing.T) {
	t.Parallel()
	path := writeResultsFile(t, `[
		{
			"code": "600519",
			"name": "Kweichow Moutai",
			"success": true,
			"sentiment_score": 75,
			"trend_prediction": "bullish",
			"operation_advice": "buy",
			"confidence": 4,
			"dashboard": {
				"core_conclusion": {"one_sentence": "buy the dip"}
			}
		},
		{
			"code": "000001",
			"name": "Ping An Bank",
			"success": false,
			"error_message": "upstream timeout",
			"sentiment_score": 0,
			"trend_prediction": "",
			"operation_advice": "watch"
		}
	]`)

	got, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].OperationAdvice != AdviceBuy || got[0].SentimentScore != 75 {
		t.Fatalf("first result = %+v", got[0])
	}
	if got[0].Dashboard == nil || got[0].Dashboard.CoreConclusion.OneSentence != "buy the dip" {
		t.Fatal("dashboard block not decoded")
	}
	if got[1].Dashboard != nil {
		t.Fatal("absent dashboard should stay nil")
	}
	if got[1].Success || got[1].ErrorMessage != "upstream timeout" {
		t.Fatalf("second result = %+v", got[1])
	}
}

func TestLoadResultsRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeResultsFile(t, `[{"code":"600519","name":"x","success":true,"sentiment_score":1,"trend_prediction":"up","operation_advice":"buy","bogus_field":1}]`)
	if _, err := LoadResults(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadResultsRejectsTrailingData(t *testing.T) {
	t.Parallel()
	path := writeResultsFile(t, `[] []`)
	if _, err := LoadResults(path); err == nil {
		t.Fatal("expected error for trailing tokens")
	}
}

func TestLoadResultsMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadResults(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
