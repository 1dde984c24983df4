package handlers

import . "agency/internal/models"

func createAgentRequest(login string, admin bool) CreateAgentRequest {
	return CreateAgentRequest{
		Login:       login,
		DisplayName: "Agent " + login,
		Email:       login + "@example.com",
		Password:    "correct-horse",
		IsAdmin:     admin,
	}
}
