package dto

type TaskAcceptedResponse struct {
	Task string   `json:"task"`
	Args []string `json:"args"`
}
