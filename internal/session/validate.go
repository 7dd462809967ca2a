package session

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/openbcf/bcf/internal/model"
)

// ifcGUIDPattern is the 22-character IFC guid alphabet from markup.xsd.
var ifcGUIDPattern = regexp.MustCompile(`^[0-9A-Za-z_$]{22}$`)

func validateAuthor(author string) error {
	err := validation.Validate(author,
		validation.Required.Error("author must be set for this operation"),
		is.EmailFormat,
	)
	if err != nil {
		return fmt.Errorf("author: %w", err)
	}
	return nil
}

func validateTopicParams(p TopicParams) error {
	return validation.Errors{
		"title": validation.Validate(p.Title, validation.Required),
		"author": validation.Validate(p.Author,
			validation.Required, is.EmailFormat),
	}.Filter()
}

func validateComment(text, author string) error {
	if err := validation.Validate(text, validation.Required.Error("comment text must not be empty")); err != nil {
		return fmt.Errorf("comment: %w", err)
	}
	return validateAuthor(author)
}

func validateHeaderFile(d model.HeaderFileData) error {
	return validation.Errors{
		"reference": validation.Validate(string(d.Reference), validation.Required),
		"ifcProject": validation.Validate(d.IfcProject,
			validation.Match(ifcGUIDPattern).Error("not a valid IFC guid")),
		"ifcSpatialStructureElement": validation.Validate(d.IfcSpatialStructureElement,
			validation.Match(ifcGUIDPattern).Error("not a valid IFC guid")),
	}.Filter()
}
