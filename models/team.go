package models

type Team struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	ShortName *string `json:"short_name,omitempty"`
}
