package validation

import (
	"regexp"
	"strings"

	"github.com/blog-platform-api/internal/models"
	"github.com/hashicorp/go-multierror"
)

var (
	// thumbnailKeyRegex accepts relative object keys such as private/<uuid>.png
	thumbnailKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*(?:/[A-Za-z0-9_-][A-Za-z0-9._-]*)*$`)
)

// ValidatePost validates a post create or update request. Every problem is
// reported, aggregated into one *multierror.Error of *models.ValidationError.
func ValidatePost(in *models.PostInput) error {
	var result *multierror.Error

	if strings.TrimSpace(in.Title) == "" {
		result = multierror.Append(result, &models.ValidationError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(in.Content) == "" {
		result = multierror.Append(result, &models.ValidationError{Field: "content", Message: "content is required"})
	}
	if in.ThumbnailImageKey != nil && *in.ThumbnailImageKey != "" && !thumbnailKeyRegex.MatchString(*in.ThumbnailImageKey) {
		result = multierror.Append(result, &models.ValidationError{
			Field:   "thumbnailImageKey",
			Message: "invalid object key",
			Value:   *in.ThumbnailImageKey,
		})
	}
	if err := ValidateCategoryRefs(in.Categories); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// ValidateCategoryRefs checks the categories array of a write request. The
// array must be present but may be empty.
func ValidateCategoryRefs(refs *[]models.CategoryID) error {
	if refs == nil {
		return &models.ValidationError{Field: "categories", Message: "categories is required"}
	}

	var result *multierror.Error
	for _, c := range *refs {
		if c.ID <= 0 {
			result = multierror.Append(result, &models.ValidationError{
				Field:   "categories",
				Message: "category id must be positive",
				Value:   c.ID,
			})
		}
	}
	return result.ErrorOrNil()
}

// ValidateCategory validates a category create or update request
func ValidateCategory(in *models.CategoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateImage rejects uploads whose content type is not an image
func ValidateImage(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return &models.ValidationError{Field: "file", Message: "file must be an image", Value: contentType}
	}
	return nil
}
