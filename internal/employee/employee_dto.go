package employee

type CreateEmployeeRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Position string  `json:"position"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	IsLead   bool    `json:"is_team_lead"`
}

type UpdateEmployeeRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Position string  `json:"position"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	IsLead   bool    `json:"is_team_lead"`
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	TeamID     *string `json:"team_id,omitempty"`
	TeamName   string  `json:"team_name,omitempty"`
	IsTeamLead bool    `json:"is_team_lead"`
}

type TeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func MapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID.String(),
		FullName:   e.FullName,
		Email:      e.Email,
		Position:   e.Position,
		IsTeamLead: e.IsTeamLead,
	}
	if e.TeamID != nil {
		v := e.TeamID.String()
		resp.TeamID = &v
	}
	if e.Team != nil {
		resp.TeamName = e.Team.Name
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = MapToResponse(e)
	}
	return resp
}
