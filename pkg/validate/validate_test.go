package validate

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "already clean", input: "Alex", want: "Alex"},
		{name: "strips punctuation", input: "Al<ex>!", want: "Alex"},
		{name: "keeps hyphen and apostrophe", input: "Mary-Jane O'Neil", want: "Mary-Jane O'Neil"},
		{name: "trims after cleaning", input: "  Sam  ", want: "Sam"},
		{name: "only invalid characters", input: "@#$%", wantErr: true},
		{name: "empty input", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if err.Field != "name" {
					t.Errorf("wrong field: %s", err.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	once, err := Name("Mary-Jane O'Neil!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Name(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once != twice {
		t.Errorf("cleaning not idempotent: %q vs %q", once, twice)
	}
}

func TestFeeling(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantMessage string
	}{
		{name: "descriptive phrase", input: "nervous before a big presentation", want: "nervous before a big presentation"},
		{name: "single long word", input: "tired", want: "tired"},
		{name: "trims whitespace", input: "  overwhelmed by deadlines  ", want: "overwhelmed by deadlines"},
		{name: "empty", input: "   ", wantMessage: "Please describe how you are feeling."},
		{name: "emoji", input: "\U0001F61F", wantMessage: "Please use descriptive text instead of emoji for your feeling."},
		{name: "emoji mixed with text", input: "sad ☹ today", wantMessage: "Please use descriptive text instead of emoji for your feeling."},
		{name: "shorthand anx", input: "anx", wantMessage: "Did you mean 'anxious'? Please use a full descriptive word."},
		{name: "shorthand uppercase", input: "STRS", wantMessage: "Did you mean 'stressed'? Please use a full descriptive word."},
		{name: "too few letters", input: "ok", wantMessage: "Please use valid words to describe your feeling."},
		{name: "digits only", input: "12345", wantMessage: "Please use valid words to describe your feeling."},
		{name: "lone short word", input: "sad", wantMessage: "Please be more descriptive, for example: 'anxious about my presentation'."},
		{name: "digits do not count as extra words", input: "123 sad 456", wantMessage: "Please be more descriptive, for example: 'anxious about my presentation'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Feeling(tt.input)
			if tt.wantMessage != "" {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if err.Message != tt.wantMessage {
					t.Errorf("got message %q, want %q", err.Message, tt.wantMessage)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeelingShorthandMentionsSuggestion(t *testing.T) {
	_, err := Feeling("anx")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Message, "anxious") {
		t.Errorf("suggestion missing from message: %q", err.Message)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name     string
		inName   string
		feeling  string
		details  string
		wantErrs int
	}{
		{name: "all within bounds", inName: "Alex", feeling: "tired", details: "", wantErrs: 0},
		{name: "empty name", inName: "", feeling: "tired", wantErrs: 1},
		{name: "name too long", inName: strings.Repeat("a", 61), feeling: "tired", wantErrs: 1},
		{name: "feeling too short", inName: "Alex", feeling: "a", wantErrs: 1},
		{name: "feeling too long", inName: "Alex", feeling: strings.Repeat("b", 281), wantErrs: 1},
		{name: "details too long", inName: "Alex", feeling: "tired", details: strings.Repeat("c", 501), wantErrs: 1},
		{name: "multiple violations", inName: "", feeling: "", wantErrs: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Bounds(tt.inName, tt.feeling, tt.details)
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors, want %d: %v", len(errs), tt.wantErrs, errs)
			}
		})
	}
}

func TestBoundsCountsRunes(t *testing.T) {
	// 60 multi-byte runes must still fit the name bound.
	name := strings.Repeat("é", 60)
	if errs := Bounds(name, "tired", ""); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}
