package user

// Profile is the signed-in identity. Display only: goals are not scoped to it.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func (p Profile) IsZero() bool {
	return p.Name == "" && p.Email == ""
}
