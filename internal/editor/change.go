package editor

import (
	"fmt"

	"chordbook/internal/models"
)

type Field string

const (
	FieldSection       Field = "section"
	FieldCustomSection Field = "customSection"
	FieldContent       Field = "content"
)

// Change sets one field of a section row. For FieldSection, Custom selects
// the custom variant and Value is ignored; otherwise Value is the canonical
// section name.
type Change struct {
	Field  Field
	Value  string
	Custom bool
}

func SelectSection(name string) Change { return Change{Field: FieldSection, Value: name} }
func SelectCustom() Change             { return Change{Field: FieldSection, Custom: true} }
func SetCustomSection(text string) Change {
	return Change{Field: FieldCustomSection, Value: text}
}
func SetContent(text string) Change { return Change{Field: FieldContent, Value: text} }

func (c Change) Validate() error {
	switch c.Field {
	case FieldSection, FieldCustomSection, FieldContent:
		return nil
	}
	return fmt.Errorf("unknown section field %q", c.Field)
}

func (c Change) apply(row *models.EditableSection) {
	switch c.Field {
	case FieldSection:
		if c.Custom {
			row.Custom = true
			row.Section = ""
			return
		}
		// leaving the custom variant drops its hidden text
		row.Custom = false
		row.Section = c.Value
		row.CustomSection = ""
	case FieldCustomSection:
		row.CustomSection = c.Value
	case FieldContent:
		row.Content = c.Value
	}
}
