package postgres

type shotDetailInsertModel struct {
	MatchID    int64   `db:"match_id"`
	OUID       string  `db:"ouid"`
	SpID       int64   `db:"spid"`
	GoalTime   int64   `db:"goal_time"`
	Period     int     `db:"period"`
	Minute     int     `db:"minute"`
	Second     int     `db:"second"`
	X          float64 `db:"x"`
	Y          float64 `db:"y"`
	ShotType   int     `db:"shot_type"`
	Result     int     `db:"result"`
	AssistSpID *int64  `db:"assist_spid"`
	HitPost    bool    `db:"hit_post"`
	InPenalty  bool    `db:"in_penalty"`
}
