package models

type ResourceRecord struct {
	ID              string      `json:"id" yaml:"id"`
	Client          string      `json:"client" yaml:"client" validate:"required"`
	Project         string      `json:"project" yaml:"project" validate:"required"`
	ClientPartner   string      `json:"client_partner" yaml:"client_partner" validate:"required"`
	DeliveryLead    string      `json:"delivery_lead" yaml:"delivery_lead"`
	Region          string      `json:"region,omitempty" yaml:"region"`
	StartDate       string      `json:"start_date" yaml:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string      `json:"end_date" yaml:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Resource        string      `json:"resource" yaml:"resource" validate:"required"`
	ServiceLine     ServiceLine `json:"service_line" yaml:"service_line" validate:"oneof=DE BI DS"`
	Booking         float64     `json:"booking" yaml:"booking" validate:"gte=0,lte=1"`
	Performance     Performance `json:"performance" yaml:"performance" validate:"oneof=A1 A2 A3"`
	IsContract      bool        `json:"is_contract" yaml:"is_contract"`
	TotalBudget     int64       `json:"total_budget" yaml:"total_budget" validate:"gte=0"`
	BurnedBudget    int64       `json:"burned_budget" yaml:"burned_budget" validate:"gte=0"`
	RemainingBudget int64       `json:"remaining_budget" yaml:"remaining_budget" validate:"gte=0"`
	BurnRate        int         `json:"burn_rate" yaml:"burn_rate" validate:"gte=0"`
}

type IssueRecord struct {
	ID              string         `json:"id" yaml:"id"`
	Client          string         `json:"client" yaml:"client" validate:"required"`
	Project         string         `json:"project" yaml:"project" validate:"required"`
	ClientPartner   string         `json:"client_partner" yaml:"client_partner" validate:"required"`
	RaisedBy        string         `json:"raised_by" yaml:"raised_by"`
	Description     string         `json:"description" yaml:"description"`
	ResolutionOwner string         `json:"resolution_owner" yaml:"resolution_owner"`
	Escalated       bool           `json:"escalated" yaml:"escalated"`
	RAGStatus       RAGStatus      `json:"rag_status" yaml:"rag_status" validate:"oneof=Red Amber Green"`
	DateCreated     string         `json:"date_created" yaml:"date_created" validate:"datetime=2006-01-02"`
	DateResolved    *string        `json:"date_resolved" yaml:"date_resolved" validate:"omitempty,datetime=2006-01-02"`
	History         []HistoryEntry `json:"history" yaml:"history"`
}

// IsOpen reports whether the issue has no resolution date.
func (i IssueRecord) IsOpen() bool {
	return i.DateResolved == nil
}

type HistoryEntry struct {
	ID        string `json:"id" yaml:"id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	User      string `json:"user" yaml:"user"`
	Action    string `json:"action" yaml:"action"`
	Details   string `json:"details" yaml:"details"`
}

// IssueFields are the caller-editable parts of an issue.
type IssueFields struct {
	Client          string
	Project         string
	ClientPartner   string
	RaisedBy        string
	Description     string
	ResolutionOwner string
	Escalated       bool
	RAGStatus       RAGStatus
}
