package domain

// HealthStatus is the qualitative bucket for one entity's recent performance.
type HealthStatus string

const (
	HealthGreat     HealthStatus = "great"
	HealthAttention HealthStatus = "attention"
	HealthProblem   HealthStatus = "problem"
)

// HealthReason is the machine-readable code explaining a health status.
type HealthReason string

const (
	ReasonLookingGood    HealthReason = "looking_good"
	ReasonNoResults      HealthReason = "no_results"
	ReasonGettingResults HealthReason = "getting_results"
	ReasonGoodEngagement HealthReason = "good_engagement"
	ReasonLowCTR         HealthReason = "low_ctr"
	ReasonNoConversions  HealthReason = "no_conversions"
)

// HealthResult pairs a status with the reason that produced it.
type HealthResult struct {
	Status HealthStatus `json:"status"`
	Reason HealthReason `json:"reason"`
}

// AccountStatus is the roll-up of entity health across an account.
type AccountStatus string

const (
	AccountGood      AccountStatus = "good"
	AccountAttention AccountStatus = "attention"
	AccountIssues    AccountStatus = "issues"
	AccountNewUser   AccountStatus = "new_user"
)

// EntityHealth is one entity's classification in an account report.
type EntityHealth struct {
	EntityID   string       `json:"entity_id"`
	EntityName string       `json:"entity_name"`
	Status     Status       `json:"status"`
	Health     HealthResult `json:"health"`
}
