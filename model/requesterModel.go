// model/requester.go
package model

import "time"

type RequesterRole string

const (
	RoleClient  RequesterRole = "CLIENT"
	RoleCompany RequesterRole = "COMPANY"
	RoleBank    RequesterRole = "BANK"
)

// Requester is whoever asks for an agreement. The role is resolved by the
// administrative layer; the agreement service only checks existence.
type Requester struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Document  string        `json:"document"`
	Role      RequesterRole `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
}
