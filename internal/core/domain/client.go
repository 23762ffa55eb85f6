package domain

import "time"

// Client is an agency customer. Contract dates drive churn risk; the monthly
// fee feeds revenue projections.
type Client struct {
	ClientID        string     `json:"clientID"` // Primary Key (UUID)
	OrganizationID  string     `json:"organizationID"`
	Name            string     `json:"name"`
	MonthlyFeeCents *int64     `json:"monthlyFeeCents"` // nullable, centavos; nil reads as 0
	ContractStart   time.Time  `json:"contractStart"`
	ContractEnd     *time.Time `json:"contractEnd"` // nullable; open-ended contracts carry none
	AuditFields
}

// MonthlyFee returns the monthly fee in centavos, 0 when unset.
func (c *Client) MonthlyFee() int64 {
	if c.MonthlyFeeCents == nil {
		return 0
	}
	return *c.MonthlyFeeCents
}
