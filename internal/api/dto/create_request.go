package dto

// CreateEventRequest is the payload for registering a new event.
// FireAt is a wall-clock time ("2006-01-02 15:04" or with seconds) in
// Timezone, an IANA zone name such as "Asia/Tokyo".
type CreateEventRequest struct {
	Title           string `json:"title" validate:"required"`
	Body            string `json:"body"`
	ChannelID       string `json:"channel_id" validate:"required"`
	FireAt          string `json:"fire_at" validate:"required"`
	Timezone        string `json:"timezone" validate:"required"`
	ReminderMinutes []int  `json:"reminder_minutes" validate:"omitempty,dive,min=0"`
}
