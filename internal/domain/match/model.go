package match

import "time"

// Match is one stored match record. RawData holds the provider payload as JSON text.
type Match struct {
	ID            int64
	MatchID       string
	MatchType     int
	MatchDate     time.Time
	OwnerOUID     string
	OwnerNickname string
	RawData       string
}

// Filter narrows the match scan used by repair jobs. Zero values mean "any".
type Filter struct {
	Nickname  string
	MatchType int
}

// Payload is the subset of the provider match detail the repair jobs read.
type Payload struct {
	MatchID   string     `json:"matchId"`
	MatchDate string     `json:"matchDate"`
	MatchType int        `json:"matchType"`
	MatchInfo []InfoItem `json:"matchInfo"`
}

type InfoItem struct {
	OUID        string        `json:"ouid"`
	Nickname    string        `json:"nickname"`
	Player      []PlayerItem  `json:"player"`
	ShootDetail []ShootDetail `json:"shootDetail"`
}

type PlayerItem struct {
	SpID       int64 `json:"spId"`
	SpPosition int   `json:"spPosition"`
	SpGrade    int   `json:"spGrade"`
}

type ShootDetail struct {
	GoalTime   int64   `json:"goalTime"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Type       int     `json:"type"`
	Result     int     `json:"result"`
	SpID       int64   `json:"spId"`
	SpGrade    int     `json:"spGrade"`
	SpLevel    int     `json:"spLevel"`
	SpIDType   bool    `json:"spIdType"`
	Assist     bool    `json:"assist"`
	AssistSpID int64   `json:"assistSpId"`
	AssistX    float64 `json:"assistX"`
	AssistY    float64 `json:"assistY"`
	HitPost    bool    `json:"hitPost"`
	InPenalty  bool    `json:"inPenalty"`
}
