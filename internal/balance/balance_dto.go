package balance

type BalanceResponse struct {
	EmployeeID     string `json:"employee_id"`
	AnnualLeave    int    `json:"annual_leave"`
	SickLeave      int    `json:"sick_leave"`
	PersonalLeave  int    `json:"personal_leave"`
	RelaxLeave     int    `json:"relax_leave"`
	MaternityLeave int    `json:"maternity_leave"`
	OtherLeave     int    `json:"other_leave"`
}

func MapToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:     b.EmployeeID.String(),
		AnnualLeave:    b.AnnualLeave,
		SickLeave:      b.SickLeave,
		PersonalLeave:  b.PersonalLeave,
		RelaxLeave:     b.RelaxLeave,
		MaternityLeave: b.MaternityLeave,
		OtherLeave:     b.OtherLeave,
	}
}
