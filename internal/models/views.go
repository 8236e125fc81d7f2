package models

type TeamDistribution struct {
	DE int `json:"DE"`
	BI int `json:"BI"`
	DS int `json:"DS"`
}

type PerformanceDistribution struct {
	A1 int `json:"A1"`
	A2 int `json:"A2"`
	A3 int `json:"A3"`
}

type SummaryStats struct {
	AvgBooking       float64          `json:"avg_booking"`
	TeamDistribution TeamDistribution `json:"team_distribution"`
	ContractCount    int              `json:"contract_count"`
}

// GroupKey identifies a project group. Client and project are kept apart so
// names containing separators never collide.
type GroupKey struct {
	Client  string `json:"client"`
	Project string `json:"project"`
}

type GroupMetrics struct {
	TotalBudget     int64 `json:"total_budget"`
	BurnedBudget    int64 `json:"burned_budget"`
	RemainingBudget int64 `json:"remaining_budget"`
	AvgBurnRate     int   `json:"avg_burn_rate"`
	ResourceCount   int   `json:"resource_count"`
}

// GroupedResources points at the records it was built from; it is a
// snapshot of one grouping run and is rebuilt on every query.
type GroupedResources struct {
	Key       GroupKey          `json:"key"`
	Resources []*ResourceRecord `json:"resources"`
	Metrics   GroupMetrics      `json:"metrics"`
}

type ClientBudget struct {
	Client          string `json:"client"`
	TotalBudget     int64  `json:"total_budget"`
	BurnedBudget    int64  `json:"burned_budget"`
	RemainingBudget int64  `json:"remaining_budget"`
}

type ResourceHighlights struct {
	ContractResources []ResourceRecord `json:"contract_resources"`
	HighPerformers    []ResourceRecord `json:"high_performers"`
	LowUtilization    []ResourceRecord `json:"low_utilization"`
	HighBurnRate      []ResourceRecord `json:"high_burn_rate"`
}

type SeverityCounts struct {
	Red   int `json:"Red"`
	Amber int `json:"Amber"`
	Green int `json:"Green"`
}

type ClientCount struct {
	Client string `json:"client"`
	Count  int    `json:"count"`
}

type IssueSummaryStats struct {
	TotalOpen  int            `json:"total_open"`
	Escalated  int            `json:"escalated"`
	BySeverity SeverityCounts `json:"by_severity"`
	// ByClient is ordered by first appearance in the input.
	ByClient []ClientCount `json:"by_client"`
}

type TrendPoint struct {
	Date     string `json:"date"`
	Open     int    `json:"open"`
	Resolved int    `json:"resolved"`
}

type HighlightCounts struct {
	ContractResources int `json:"contract_resources"`
	HighPerformers    int `json:"high_performers"`
	LowUtilization    int `json:"low_utilization"`
	HighBurnRate      int `json:"high_burn_rate"`
}

// ResourceOverview bundles every figure the resource dashboard shows above its table.
type ResourceOverview struct {
	Summary                 SummaryStats            `json:"summary"`
	ResourceCount           int                     `json:"resource_count"`
	AvgBurnRate             int                     `json:"avg_burn_rate"`
	ContractShare           int                     `json:"contract_share"`
	PerformanceDistribution PerformanceDistribution `json:"performance_distribution"`
	BudgetByClient          []ClientBudget          `json:"budget_by_client"`
	Highlights              HighlightCounts         `json:"highlights"`
}
