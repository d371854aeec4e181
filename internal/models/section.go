// internal/models/section.go
package models

// Canonical section names offered by the editor.
var CanonicalSections = []string{"Intro", "Verse", "Pre Chorus", "Chorus", "Bridge", "Outro"}

// EditableSection is one row of the add/edit form.
//
// It is a tagged variant: when Custom is false the row names a canonical
// section through Section ("" for a blank selection); when Custom is true the
// name is the free text in CustomSection and Section is unused.
type EditableSection struct {
	Custom        bool   `json:"custom"`
	Section       string `json:"section"`
	CustomSection string `json:"customSection,omitempty"`
	Content       string `json:"content"`
}

func CanonicalRow(name, content string) EditableSection {
	return EditableSection{Section: name, Content: content}
}

func CustomRow(name, content string) EditableSection {
	return EditableSection{Custom: true, CustomSection: name, Content: content}
}
