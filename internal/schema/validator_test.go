package schema

import "testing"

func TestValidateRulesDocument(t *testing.T) {
	data := map[string]interface{}{
		"prefixes": map[string]interface{}{
			"Texture2D": "tex",
			"Material":  "mat",
		},
	}

	res, err := Validate(data, "curator-rules-v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("expected valid document, got errors: %+v", res.Errors)
	}
}

func TestValidateRejectsBadPrefix(t *testing.T) {
	data := map[string]interface{}{
		"prefixes": map[string]interface{}{
			"Texture2D": "",
		},
	}

	res, err := Validate(data, "curator-rules-v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Error("empty prefix should fail validation")
	}
	if len(res.Errors) == 0 {
		t.Error("expected at least one validation error")
	}
}

func TestValidateRejectsUnknownKeys(t *testing.T) {
	data := map[string]interface{}{
		"prefixes": map[string]interface{}{"Material": "mat"},
		"suffixes": map[string]interface{}{"Material": "inst"},
	}

	res, err := Validate(data, "curator-rules-v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Error("unknown top-level key should fail validation")
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	if _, err := Validate(map[string]interface{}{}, "nope-v9"); err == nil {
		t.Error("expected error for unknown schema name")
	}
}
