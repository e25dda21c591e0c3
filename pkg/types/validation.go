package types

// ValidationOutcome is the result of a dry-run validation of a cluster
// config. Errors are blocking, warnings are not. The outcome is produced
// once per submission attempt and not mutated afterwards.
type ValidationOutcome struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
