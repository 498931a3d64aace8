package validation

import (
	"errors"
	"testing"

	"github.com/blog-platform-api/internal/models"
	"github.com/hashicorp/go-multierror"
)

func refs(ids ...int64) *[]models.CategoryID {
	out := make([]models.CategoryID, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.CategoryID{ID: id})
	}
	return &out
}

func strPtr(s string) *string { return &s }

func fields(err error) []string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var out []string
		for _, e := range merr.Errors {
			out = append(out, fields(e)...)
		}
		return out
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return []string{verr.Field}
	}
	return nil
}

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name           string
		input          models.PostInput
		expectedFields []string
	}{
		{
			name:  "valid post",
			input: models.PostInput{Title: "Hi", Content: "<p>x</p>", Categories: refs(1, 2)},
		},
		{
			name:  "empty categories array is allowed",
			input: models.PostInput{Title: "Hi", Content: "<p>x</p>", Categories: refs()},
		},
		{
			name:           "missing everything",
			input:          models.PostInput{},
			expectedFields: []string{"title", "content", "categories"},
		},
		{
			name:           "whitespace title",
			input:          models.PostInput{Title: "   ", Content: "c", Categories: refs()},
			expectedFields: []string{"title"},
		},
		{
			name:           "non-positive category ids",
			input:          models.PostInput{Title: "t", Content: "c", Categories: refs(0, -3, 4)},
			expectedFields: []string{"categories", "categories"},
		},
		{
			name:  "valid thumbnail key",
			input: models.PostInput{Title: "t", Content: "c", ThumbnailImageKey: strPtr("private/0b5e-11.png"), Categories: refs()},
		},
		{
			name:  "empty thumbnail key means none",
			input: models.PostInput{Title: "t", Content: "c", ThumbnailImageKey: strPtr(""), Categories: refs()},
		},
		{
			name:           "traversing thumbnail key",
			input:          models.PostInput{Title: "t", Content: "c", ThumbnailImageKey: strPtr("../secret.png"), Categories: refs()},
			expectedFields: []string{"thumbnailImageKey"},
		},
		{
			name:           "absolute thumbnail key",
			input:          models.PostInput{Title: "t", Content: "c", ThumbnailImageKey: strPtr("/private/a.png"), Categories: refs()},
			expectedFields: []string{"thumbnailImageKey"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(&tt.input)
			got := fields(err)

			if len(got) != len(tt.expectedFields) {
				t.Fatalf("Expected fields %v, got %v (%v)", tt.expectedFields, got, err)
			}
			for i := range got {
				if got[i] != tt.expectedFields[i] {
					t.Errorf("Expected field %d to be %q, got %q", i, tt.expectedFields[i], got[i])
				}
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	if err := ValidateCategory(&models.CategoryInput{Name: "Go"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	err := ValidateCategory(&models.CategoryInput{Name: " "})
	if got := fields(err); len(got) != 1 || got[0] != "name" {
		t.Errorf("Expected name error, got %v", err)
	}
}

func TestValidateImage(t *testing.T) {
	for _, ct := range []string{"image/png", "image/jpeg", "image/webp"} {
		if err := ValidateImage(ct); err != nil {
			t.Errorf("Expected %s to be accepted, got %v", ct, err)
		}
	}
	for _, ct := range []string{"", "text/plain", "application/pdf"} {
		if err := ValidateImage(ct); err == nil {
			t.Errorf("Expected %q to be rejected", ct)
		}
	}
}

func BenchmarkValidatePost(b *testing.B) {
	in := &models.PostInput{Title: "Hi", Content: "<p>x</p>", ThumbnailImageKey: strPtr("private/a.png"), Categories: refs(1, 2, 3, 4, 5)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidatePost(in)
	}
}
