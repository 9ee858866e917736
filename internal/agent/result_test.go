package agent

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ResultKind
		wantKey  string
	}{
		{"plain object", `{"title":"Ajută copiii"}`, KindStructured, "title"},
		{"fenced", "```json\n{\"title\":\"x\"}\n```", KindStructured, "title"},
		{"prose around", `Iată campania: {"title":"x","tips":["a"]} Succes!`, KindStructured, "tips"},
		{"nested", `{"a":{"b":{"c":1}},"d":[{"e":2}]}`, KindStructured, "a"},
		{"no braces", "Nu pot genera JSON acum.", KindRaw, ""},
		{"empty", "", KindRaw, ""},
		{"only closing", "} oops {", KindRaw, ""},
		{"malformed", `{"title": "x",}`, KindRaw, ""},
		{"stray braces widen", `Use {braces} like this: {"title":"x"}`, KindRaw, ""},
		{"array top-level", `[{"a":1}]`, KindStructured, "a"},
		{"not an object", `{1, 2}`, KindRaw, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.input)
			if got.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v (result %+v)", got.Kind, tt.wantKind, got)
			}
			if tt.wantKind == KindRaw && got.Text != tt.input {
				t.Errorf("raw text = %q, want input %q", got.Text, tt.input)
			}
			if tt.wantKey != "" {
				if _, ok := got.Field(tt.wantKey); !ok {
					t.Errorf("missing key %q in %v", tt.wantKey, got.Data)
				}
			}
		})
	}
}

func TestExtractJSON_CampaignReply(t *testing.T) {
	reply := "Sigur! ```json\n{\"title\":\"Școala din sat\",\"goalAmount\":25000,\"tips\":[\"Postează zilnic\",\"Mulțumește public\"]}\n```"
	got := ExtractJSON(reply)
	if got.Kind != KindStructured {
		t.Fatalf("expected structured result, got %+v", got)
	}
	if title, _ := got.String("title"); title != "Școala din sat" {
		t.Errorf("title = %q", title)
	}
	if goal, _ := got.Field("goalAmount"); goal != float64(25000) {
		t.Errorf("goalAmount = %v", goal)
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want string
	}{
		{"structured", Structured(map[string]any{"a": "b"}), `{"a":"b"}`},
		{"structured nil", Structured(nil), `{}`},
		{"raw", Raw("text"), `{"raw":"text"}`},
		{"reply", Reply("salut"), `{"reply":"salut"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.r)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}

func TestResult_FieldOnRaw(t *testing.T) {
	if _, ok := Raw(`{"a":1}`).Field("a"); ok {
		t.Error("raw result should expose no fields")
	}
	if _, ok := Structured(map[string]any{"n": 1.0}).String("n"); ok {
		t.Error("String should reject non-string values")
	}
}
