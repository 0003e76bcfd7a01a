package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateDesignSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"square", 100, 100, false},
		{"zero", 0, 0, false},
		{"zero width", 0, 80, false},

		{"negative width", -1, 100, true},
		{"negative height", 100, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDesignSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDesignSize(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfiguration) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfiguration)
			}
		})
	}
}

func TestValidateDepth(t *testing.T) {
	if err := ValidateDepth(15); err != nil {
		t.Errorf("ValidateDepth(15) error = %v", err)
	}
	if err := ValidateDepth(math.Inf(-1)); err != nil {
		t.Errorf("ValidateDepth(-Inf) error = %v", err)
	}
	if err := ValidateDepth(math.NaN()); err == nil {
		t.Error("ValidateDepth(NaN) should fail")
	}
}

func TestValidateChildID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "logo", false},
		{"with dash", "title-bar", false},
		{"with slash", "header/icon", false},
		{"unicode", "ボタン", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " logo", true},
		{"trailing space", "logo ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChildID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChildID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "scenes/home.toml", false},
		{"absolute", "/tmp/home.yaml", false},

		{"empty", "", true},
		{"null byte", "home\x00.toml", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
