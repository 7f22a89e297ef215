package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdviseRequest is the request body for asking where a piece should go.
// Board rows are top first, '.' for empty.
type AdviseRequest struct {
	Piece    string   `json:"piece"`
	Board    []string `json:"board"`
	Strategy string   `json:"strategy,omitempty"`
	Explain  bool     `json:"explain,omitempty"`
}

// CreateGameRequest is the request body for starting a game. Zero
// dimensions take the defaults.
type CreateGameRequest struct {
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Preset string `json:"preset,omitempty"`
}

// PlaceRequest is the request body for dropping the current piece
type PlaceRequest struct {
	Rotations int  `json:"rotations"`
	Column    *int `json:"column"`
}

// AutoplayRequest is the request body for letting the bot play
type AutoplayRequest struct {
	Strategy string `json:"strategy,omitempty"`
	Pieces   int    `json:"pieces,omitempty"`
}
