package model

import "time"

// Project is a named free-form notes document.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

func (p *Project) ModifiedAt() time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt.Time
	}
	return p.CreatedAt.Time
}
