package codes

// Code is the document authority's view of a shared code file.
type Code struct {
	ID string `json:"_id,omitempty"`

	// Access lists the collaborator emails allowed to open the code.
	Access []string `json:"Access"`

	// Content, Language and Title are optional hints used to seed the editor.
	Content  string `json:"content,omitempty"`
	Language string `json:"language,omitempty"`
	Title    string `json:"title,omitempty"`
}

type saveRequest struct {
	Content string `json:"content"`
}

type accessRequest struct {
	Email string `json:"email"`
}
