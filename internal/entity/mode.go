package entity

// GameMode - indicates whether a Game is played against the automatic player
// or between two humans.
type GameMode string

const (
	ModeSinglePlayer GameMode = "SinglePlayer"
	ModeTwoPlayers   GameMode = "TwoPlayers"
)

// SkillLevel - the strength at which the automatic player plays.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillExpert       SkillLevel = "Expert"
	SkillMaster       SkillLevel = "Master"
)
