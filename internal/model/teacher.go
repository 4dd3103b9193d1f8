package model

type TeacherRecord struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Email          string `json:"email,omitempty"`
	CredentialHash string `json:"-"`
}
