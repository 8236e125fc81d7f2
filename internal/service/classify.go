package service

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/resource-dashboard/backend/internal/models"
)

const classNeutral = "neutral"

func PerformanceClass(p models.Performance) string {
	switch p {
	case models.PerformanceA1:
		return "good"
	case models.PerformanceA2:
		return "warn"
	case models.PerformanceA3:
		return "bad"
	default:
		return classNeutral
	}
}

func BudgetClass(burnRate int) string {
	switch {
	case burnRate > 60:
		return "high"
	case burnRate >= 40:
		return "medium"
	default:
		return "low"
	}
}

func RAGStatusClass(status models.RAGStatus) string {
	switch status {
	case models.RAGRed:
		return "red"
	case models.RAGAmber:
		return "amber"
	case models.RAGGreen:
		return "green"
	default:
		return classNeutral
	}
}

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a whole-dollar amount, e.g. $100,000.
func FormatCurrency(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return currencyPrinter.Sprintf("-$%d", -rounded)
	}
	return currencyPrinter.Sprintf("$%d", rounded)
}
