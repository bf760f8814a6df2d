package domain

// ByUserInput selects one author's posts
type ByUserInput struct {
	UserID string `json:"userId" validate:"required,max=191" example:"user_2NNEqL2nrIRdJ194ndJqAHwEfxC"`
}

// ByIDInput selects one post
type ByIDInput struct {
	ID string `json:"id" validate:"required" example:"0b6f6c6e-4d1f-4a57-9d1e-2f7f7e0d3c55"`
}

// CreateInput is the body of a new post. The author always comes from the session
type CreateInput struct {
	Content string `json:"content" validate:"required,emoji" example:"🐦✨"`
}
