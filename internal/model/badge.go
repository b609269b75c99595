package model

// Badge is the discrete recommendation label shown to the user for a
// candidate title.
type Badge string

const (
	BadgePerfectMatch  Badge = "perfect-match"
	BadgeGreatPick     Badge = "great-pick"
	BadgeWorthATry     Badge = "worth-a-try"
	BadgeMixedFeelings Badge = "mixed-feelings"
	BadgeNotYourStyle  Badge = "not-your-style"
)

// Tier is an engagement-level label derived purely from how many movies a
// user has rated.
type Tier string

const (
	TierNewcomer   Tier = "Newcomer"
	TierExplorer   Tier = "Explorer"
	TierEnthusiast Tier = "Enthusiast"
	TierExpert     Tier = "Expert"
	TierMaster     Tier = "Master"
)

// Adjustments holds the per-factor contributions added onto the base score,
// each rounded to one decimal for presentation.
type Adjustments struct {
	Genre    float64 `json:"genre"`
	Director float64 `json:"director"`
	Cast     float64 `json:"cast"`
}

// BadgeResult is the badge engine's output. It is computed fresh on every
// call and never persisted by the engine itself.
type BadgeResult struct {
	Badge         Badge       `json:"badge"`
	Emoji         string      `json:"emoji"`
	Description   string      `json:"description"`
	Tier          Tier        `json:"tier"`
	TotalVotes    int         `json:"totalVotes"`
	BaseScore     float64     `json:"baseScore"`
	AdjustedScore float64     `json:"adjustedScore"`
	Adjustments   Adjustments `json:"adjustments"`
}
