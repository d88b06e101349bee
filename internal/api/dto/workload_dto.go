package dto

// TeamWorkloadRequest selects the users for a team workload report. When
// All is set the server resolves the member pool itself.
type TeamWorkloadRequest struct {
	UserIDs []string `json:"userIds"`
	All     bool     `json:"all"`
}
