package entity

const (
	BoardSize = 9

	FirstSquare = 1
	LastSquare  = 9
)

type Move struct {
	Player   Player `json:"player"`
	SquareID int    `json:"squareId"`
}

type GameStatus struct {
	IsComplete bool    `json:"isComplete"`
	Winner     *Player `json:"winner"`
}

// IsTie - a complete game without a winner.
func (that GameStatus) IsTie() bool {
	return that.IsComplete && that.Winner == nil
}

func (that GameStatus) WinnerID() string {
	if that.Winner == nil {
		return ""
	}

	return that.Winner.ID
}

func (that GameStatus) clone() GameStatus {
	status := GameStatus{IsComplete: that.IsComplete}
	if that.Winner != nil {
		winner := *that.Winner
		status.Winner = &winner
	}

	return status
}

// GameRecord is an archived game. It is never modified after it is appended to history.
type GameRecord struct {
	Moves  []Move     `json:"moves"`
	Status GameStatus `json:"status"`
}

func (that GameRecord) clone() GameRecord {
	return GameRecord{
		Moves:  cloneMoves(that.Moves),
		Status: that.Status.clone(),
	}
}

type History struct {
	CurrentRoundGames []GameRecord `json:"currentRoundGames"`
	AllGames          []GameRecord `json:"allGames"`
}

// GameState is the persisted root. It is always written and read as a whole.
type GameState struct {
	CurrentGameMoves []Move  `json:"currentGameMoves"`
	History          History `json:"history"`
}

func NewGameState() GameState {
	return GameState{
		CurrentGameMoves: []Move{},
		History: History{
			CurrentRoundGames: []GameRecord{},
			AllGames:          []GameRecord{},
		},
	}
}

// Clone - returns a copy that shares no memory with the receiver.
// Nil slices come back empty, so a cloned state always encodes arrays, never null.
func (that GameState) Clone() GameState {
	return GameState{
		CurrentGameMoves: cloneMoves(that.CurrentGameMoves),
		History: History{
			CurrentRoundGames: cloneRecords(that.History.CurrentRoundGames),
			AllGames:          cloneRecords(that.History.AllGames),
		},
	}
}

// CurrentGame is the projection of the in-progress game.
type CurrentGame struct {
	CurrentPlayer Player     `json:"currentPlayer"`
	Status        GameStatus `json:"status"`
}

// Stats is the scoreboard of the current round.
type Stats struct {
	P1Wins int `json:"p1Wins"`
	P2Wins int `json:"p2Wins"`
	Ties   int `json:"ties"`
}

func cloneMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	copy(out, moves)

	return out
}

func cloneRecords(records []GameRecord) []GameRecord {
	out := make([]GameRecord, 0, len(records))
	for _, record := range records {
		out = append(out, record.clone())
	}

	return out
}
