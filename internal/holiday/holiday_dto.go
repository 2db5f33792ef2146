package holiday

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Date string `json:"date" binding:"required"`
}

type UpdateHolidayRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Date string `json:"date" binding:"required"`
}

type ListQuery struct {
	// Year filters to holidays within one calendar year; zero means all.
	Year int `form:"year" binding:"omitempty,min=2000,max=2200"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

func MapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
	}
}

func MapToListResponse(holidays []Holiday) []HolidayResponse {
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = MapToResponse(h)
	}
	return resp
}
