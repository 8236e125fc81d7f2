package models

type ServiceLine string

const (
	ServiceLineDE ServiceLine = "DE"
	ServiceLineBI ServiceLine = "BI"
	ServiceLineDS ServiceLine = "DS"
)

func (s ServiceLine) Valid() bool {
	switch s {
	case ServiceLineDE, ServiceLineBI, ServiceLineDS:
		return true
	default:
		return false
	}
}

type Performance string

const (
	PerformanceA1 Performance = "A1"
	PerformanceA2 Performance = "A2"
	PerformanceA3 Performance = "A3"
)

func (p Performance) Valid() bool {
	switch p {
	case PerformanceA1, PerformanceA2, PerformanceA3:
		return true
	default:
		return false
	}
}

type RAGStatus string

const (
	RAGRed   RAGStatus = "Red"
	RAGAmber RAGStatus = "Amber"
	RAGGreen RAGStatus = "Green"
)

func (r RAGStatus) Valid() bool {
	switch r {
	case RAGRed, RAGAmber, RAGGreen:
		return true
	default:
		return false
	}
}

// History actions written by the issue mutations.
const (
	ActionCreated  = "Created"
	ActionUpdated  = "Updated"
	ActionResolved = "Resolved"
)

// FilterAll is the sentinel that disables a string filter criterion.
const FilterAll = "All"
