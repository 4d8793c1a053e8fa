package members

type CreateMemberPayload struct {
	FirstName        string  `json:"first_name" validate:"required,max=100"`
	LastName         string  `json:"last_name" validate:"required,max=100"`
	Email            string  `json:"email" validate:"required,email,max=200"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address          *string `json:"address,omitempty" validate:"omitempty,max=500"`
	RegistrationDate string  `json:"registration_date,omitempty" validate:"date"`
	Active           *bool   `json:"active,omitempty"`
}

type ListMembersQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=500"`
	Skip   int     `query:"skip" json:"skip,omitempty" validate:"min=0"`
	Name   *string `query:"name" json:"name,omitempty" validate:"omitempty,max=200"`
	Active *bool   `query:"active" json:"active,omitempty"`
}

type UpdateMemberPayload struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Active    *bool   `json:"active,omitempty"`
}
