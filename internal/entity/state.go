package entity

// State is the read model returned to clients after every request.
type State struct {
	ID            string     `json:"id"`
	Board         Board      `json:"board"`
	CurrentPlayer Color      `json:"current_player"`
	Score         Score      `json:"score"`
	ValidMoves    []Position `json:"valid_moves"`
	GameOver      bool       `json:"game_over"`
	Winner        Color      `json:"winner"`
	EndedBy       Color      `json:"ended_by"`
	Moves         int        `json:"moves"`
}
