package models

type Ebook struct {
	ID          string `json:"id"`
	Titre       string `json:"titre"`
	SousTitre   string `json:"sousTitre,omitempty"`
	Description string `json:"description,omitempty"`
	URLEbook    string `json:"urlEbook,omitempty"`
}
