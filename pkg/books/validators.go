package books

type CreateBookPayload struct {
	Title           string  `json:"title" validate:"required,max=300"`
	Author          string  `json:"author" validate:"required,max=200"`
	ISBN            string  `json:"isbn" validate:"required,max=20"`
	PublicationYear *int    `json:"publication_year,omitempty" validate:"omitempty,min=0"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Available       *bool   `json:"available,omitempty"`
}

type ListBooksQuery struct {
	Limit     int     `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=500"`
	Skip      int     `query:"skip" json:"skip,omitempty" validate:"min=0"`
	Title     *string `query:"title" json:"title,omitempty" validate:"omitempty,max=300"`
	Author    *string `query:"author" json:"author,omitempty" validate:"omitempty,max=200"`
	Available *bool   `query:"available" json:"available,omitempty"`
}

type UpdateBookPayload struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,max=300"`
	Author          *string `json:"author,omitempty" validate:"omitempty,max=200"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,max=20"`
	PublicationYear *int    `json:"publication_year,omitempty" validate:"omitempty,min=0"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Available       *bool   `json:"available,omitempty"`
}
