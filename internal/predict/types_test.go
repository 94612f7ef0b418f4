package predict

import (
	"encoding/json"
	"testing"
)

func TestImportancesNull(t *testing.T) {
	var result Result
	payload := `{"prediction": 1, "probability": {"stay": 0.2, "leave": 0.8}, "confidence": 0.8, "feature_importance": null}`
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Importances != nil {
		t.Fatalf("expected nil importances got %v", result.Importances)
	}
}

func TestImportancesMarshalKeepsOrder(t *testing.T) {
	var im Importances
	source := `{"B": 2, "A": 1, "C": 3}`
	if err := json.Unmarshal([]byte(source), &im); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(im)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"B":2,"A":1,"C":3}` {
		t.Fatalf("order not preserved: %s", out)
	}
}

func TestImportancesRejectsNonObject(t *testing.T) {
	var im Importances
	if err := json.Unmarshal([]byte(`[1,2]`), &im); err == nil {
		t.Fatal("expected error for array payload")
	}
}
