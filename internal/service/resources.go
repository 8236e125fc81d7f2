package service

import (
	"math"
	"sort"
	"strings"

	"github.com/resource-dashboard/backend/internal/models"
)

const (
	lowUtilizationBooking = 0.7
	highBurnRateThreshold = 70
)

type ResourceFilter struct {
	ClientPartner string
	// EndDateCutoff keeps records ending on or before this date. Empty means no cutoff.
	EndDateCutoff string
	Region        string
}

// FilterResources returns the records matching every supplied criterion, in
// their original order.
func FilterResources(records []models.ResourceRecord, f ResourceFilter) []models.ResourceRecord {
	out := records
	if !isUnset(f.ClientPartner) {
		out = filterResources(out, func(r models.ResourceRecord) bool {
			return r.ClientPartner == f.ClientPartner
		})
	}
	if strings.TrimSpace(f.EndDateCutoff) != "" {
		cutoff, valid := parseDate(f.EndDateCutoff)
		out = filterResources(out, func(r models.ResourceRecord) bool {
			if !valid {
				return false
			}
			end, ok := parseDate(r.EndDate)
			return ok && !end.After(cutoff)
		})
	}
	if !isUnset(f.Region) {
		out = filterResources(out, func(r models.ResourceRecord) bool {
			return r.Region == f.Region
		})
	}
	return out
}

// SummarizeResources computes the headline statistics of a resource set.
func SummarizeResources(records []models.ResourceRecord) models.SummaryStats {
	var stats models.SummaryStats
	if len(records) == 0 {
		return stats
	}

	var totalBooking float64
	for _, r := range records {
		totalBooking += r.Booking
		switch r.ServiceLine {
		case models.ServiceLineDE:
			stats.TeamDistribution.DE++
		case models.ServiceLineBI:
			stats.TeamDistribution.BI++
		case models.ServiceLineDS:
			stats.TeamDistribution.DS++
		default:
		}
		if r.IsContract {
			stats.ContractCount++
		}
	}
	stats.AvgBooking = totalBooking / float64(len(records))
	return stats
}

// GroupResourcesByProject partitions records by (client, project). Groups are
// ordered by client then project; members point into records.
func GroupResourcesByProject(records []models.ResourceRecord) []models.GroupedResources {
	index := make(map[models.GroupKey]int)
	groups := make([]models.GroupedResources, 0)
	for i := range records {
		key := models.GroupKey{Client: records[i].Client, Project: records[i].Project}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, models.GroupedResources{Key: key})
		}
		groups[pos].Resources = append(groups[pos].Resources, &records[i])
	}

	for i := range groups {
		groups[i].Metrics = groupMetrics(groups[i].Resources)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Key.Client == groups[j].Key.Client {
			return groups[i].Key.Project < groups[j].Key.Project
		}
		return groups[i].Key.Client < groups[j].Key.Client
	})
	return groups
}

func groupMetrics(members []*models.ResourceRecord) models.GroupMetrics {
	m := models.GroupMetrics{ResourceCount: len(members)}
	if len(members) == 0 {
		return m
	}
	var burnRates int
	for _, r := range members {
		m.TotalBudget += r.TotalBudget
		m.BurnedBudget += r.BurnedBudget
		m.RemainingBudget += r.RemainingBudget
		burnRates += r.BurnRate
	}
	m.AvgBurnRate = roundHalfUp(float64(burnRates) / float64(len(members)))
	return m
}

// FlattenGroups lists the members of every group in group order.
func FlattenGroups(groups []models.GroupedResources) []models.ResourceRecord {
	var out []models.ResourceRecord
	for _, g := range groups {
		for _, r := range g.Resources {
			out = append(out, *r)
		}
	}
	return out
}

// AverageBurnRate is the rounded mean burn rate, 0 for an empty set.
func AverageBurnRate(records []models.ResourceRecord) int {
	if len(records) == 0 {
		return 0
	}
	var total int
	for _, r := range records {
		total += r.BurnRate
	}
	return roundHalfUp(float64(total) / float64(len(records)))
}

func SummarizePerformance(records []models.ResourceRecord) models.PerformanceDistribution {
	var dist models.PerformanceDistribution
	for _, r := range records {
		switch r.Performance {
		case models.PerformanceA1:
			dist.A1++
		case models.PerformanceA2:
			dist.A2++
		case models.PerformanceA3:
			dist.A3++
		default:
		}
	}
	return dist
}

// BudgetByClient sums budgets per client in first-seen order.
func BudgetByClient(records []models.ResourceRecord) []models.ClientBudget {
	index := make(map[string]int)
	out := make([]models.ClientBudget, 0)
	for _, r := range records {
		pos, ok := index[r.Client]
		if !ok {
			pos = len(out)
			index[r.Client] = pos
			out = append(out, models.ClientBudget{Client: r.Client})
		}
		out[pos].TotalBudget += r.TotalBudget
		out[pos].BurnedBudget += r.BurnedBudget
		out[pos].RemainingBudget += r.RemainingBudget
	}
	return out
}

func Highlights(records []models.ResourceRecord) models.ResourceHighlights {
	return models.ResourceHighlights{
		ContractResources: filterResources(records, func(r models.ResourceRecord) bool { return r.IsContract }),
		HighPerformers:    filterResources(records, func(r models.ResourceRecord) bool { return r.Performance == models.PerformanceA1 }),
		LowUtilization:    filterResources(records, func(r models.ResourceRecord) bool { return r.Booking < lowUtilizationBooking }),
		HighBurnRate:      filterResources(records, func(r models.ResourceRecord) bool { return r.BurnRate > highBurnRateThreshold }),
	}
}

// Overview assembles the resource dashboard figures for an already filtered set.
func Overview(records []models.ResourceRecord) models.ResourceOverview {
	summary := SummarizeResources(records)
	hl := Highlights(records)
	ov := models.ResourceOverview{
		Summary:                 summary,
		ResourceCount:           len(records),
		AvgBurnRate:             AverageBurnRate(records),
		PerformanceDistribution: SummarizePerformance(records),
		BudgetByClient:          BudgetByClient(records),
		Highlights: models.HighlightCounts{
			ContractResources: len(hl.ContractResources),
			HighPerformers:    len(hl.HighPerformers),
			LowUtilization:    len(hl.LowUtilization),
			HighBurnRate:      len(hl.HighBurnRate),
		},
	}
	if len(records) > 0 {
		ov.ContractShare = roundHalfUp(float64(summary.ContractCount) / float64(len(records)) * 100)
	}
	return ov
}

// ResourceClientPartners lists distinct client partners in first-seen order.
func ResourceClientPartners(records []models.ResourceRecord) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range records {
		if seen[r.ClientPartner] {
			continue
		}
		seen[r.ClientPartner] = true
		out = append(out, r.ClientPartner)
	}
	return out
}

func filterResources(records []models.ResourceRecord, keep func(models.ResourceRecord) bool) []models.ResourceRecord {
	out := make([]models.ResourceRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func isUnset(criterion string) bool {
	criterion = strings.TrimSpace(criterion)
	return criterion == "" || criterion == models.FilterAll
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
