package middleware

import "testing"

func TestValidateMovieID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid imdb", "tt0111161", "tt0111161", false},
		{"valid imdb 8 digits", "tt10872600", "tt10872600", false},
		{"valid tmdb numeric", "278", "278", false},
		{"trims whitespace", "  tt0111161  ", "tt0111161", false},
		{"empty", "", "", true},
		{"too long", "tt1234567890123456789", "", true},
		{"imdb too few digits", "tt123", "", true},
		{"bare prefix", "tt", "", true},
		{"invalid chars", "tt01111 61", "", true},
		{"sql injection", "tt'; DROP--", "", true},
		{"mixed alpha", "abc1234", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateMovieID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid sha256", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", false},
		{"uppercase normalized", "ABCD1234", "abcd1234", false},
		{"empty", "", "", true},
		{"too long 65", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2a", "", true},
		{"non-hex chars", "xyz123", "", true},
		{"sql injection", "abc'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUserID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateBaseScore(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    float64
		wantErr bool
	}{
		{"mid scale", 7.3, 7.3, false},
		{"zero means unscored", 0, 0, false},
		{"top of scale", 10, 10, false},
		{"negative", -0.1, 0, true},
		{"above scale", 10.1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateBaseScore(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	if got := ValidateTitle("  The Shawshank Redemption  "); got != "The Shawshank Redemption" {
		t.Errorf("trim failed: got %q", got)
	}
	long := ""
	for i := 0; i < 300; i++ {
		long += "x"
	}
	if got := ValidateTitle(long); len(got) != MaxTitleLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxTitleLen)
	}
}

func TestValidateListField(t *testing.T) {
	if got := ValidateListField(" Action, Drama "); got != "Action, Drama" {
		t.Errorf("trim failed: got %q", got)
	}
	long := ""
	for i := 0; i < 600; i++ {
		long += "x"
	}
	if got := ValidateListField(long); len(got) != MaxListFieldLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxListFieldLen)
	}
}
