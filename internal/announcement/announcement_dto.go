package announcement

import "time"

type CreateAnnouncementRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Body      string `json:"body" binding:"required"`
	Pinned    bool   `json:"pinned"`
	ExpiresAt string `json:"expires_at" binding:"omitempty"`
}

type UpdateAnnouncementRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Body      string `json:"body" binding:"required"`
	Pinned    bool   `json:"pinned"`
	ExpiresAt string `json:"expires_at" binding:"omitempty"`
}

type ListQuery struct {
	Search string `form:"q"`
	// IncludeExpired is honored for managers only.
	IncludeExpired bool `form:"include_expired"`
	Page           int  `form:"page" binding:"omitempty,min=1"`
	Limit          int  `form:"limit" binding:"omitempty,min=1,max=100"`
}

type AnnouncementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Pinned      bool   `json:"pinned"`
	PublishedAt string `json:"published_at"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

func MapToResponse(a Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		Body:        a.Body,
		Pinned:      a.Pinned,
		PublishedAt: a.PublishedAt.Format(time.RFC3339),
	}
	if a.ExpiresAt != nil {
		resp.ExpiresAt = a.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

func MapToListResponse(announcements []Announcement) []AnnouncementResponse {
	resp := make([]AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		resp[i] = MapToResponse(a)
	}
	return resp
}
