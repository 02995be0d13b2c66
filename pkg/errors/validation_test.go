package errors

import (
	"strings"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"valid square", 800, 800, false},
		{"valid minimal", 1, 1, false},
		{"valid max", MaxCanvasSide, MaxCanvasSide, false},

		{"zero width", 0, 600, true},
		{"zero height", 800, 0, true},
		{"negative width", -1, 600, true},
		{"negative height", 800, -20, true},
		{"too wide", MaxCanvasSide + 1, 600, true},
		{"too tall", 800, MaxCanvasSide + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("max_words", 1); err != nil {
		t.Errorf("ValidatePositive(1) = %v", err)
	}
	for _, v := range []int{0, -5} {
		err := ValidatePositive("max_words", v)
		if err == nil {
			t.Fatalf("ValidatePositive(%d) should fail", v)
		}
		if !strings.Contains(err.Error(), "max_words") {
			t.Errorf("error should name the option: %v", err)
		}
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf("scaling", "log", "linear", "log"); err != nil {
		t.Errorf("valid choice rejected: %v", err)
	}
	err := ValidateOneOf("scaling", "sqrt", "linear", "log")
	if err == nil {
		t.Fatal("invalid choice accepted")
	}
	if !strings.Contains(err.Error(), "linear, log") {
		t.Errorf("error should list choices: %v", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "content/sample_text.txt", false},
		{"absolute", "/tmp/cloud.png", false},
		{"unicode", "content/猫.png", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"2f1c9b2e-5f8e-4b8f-9a55-2d4f3f0a6c11", false},
		{"abc_123", false},

		{"", true},
		{"../etc/passwd", true},
		{"a/b", true},
		{"a b", true},
		{strings.Repeat("x", 200), true},
	}

	for _, tt := range tests {
		err := ValidateID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
