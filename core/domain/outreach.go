// ABOUTME: Outreach draft model holds a generated message for one profile

package domain

// OutreachDraft is a suggested first-contact message for a profile
type OutreachDraft struct {
	ProfileID int    `json:"profileId"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
