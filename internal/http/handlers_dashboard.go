package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"financepro/internal/core"
	"financepro/internal/report"
)

// parsePeriod extracts the reporting period from query parameters, falling
// back to the current month. Months are zero-based, January is 0.
func parsePeriod(r *http.Request) core.Period {
	p := core.PeriodOf(time.Now())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			p.Year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 0 && m <= 11 {
			p.Month = m
		}
	}

	return p
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	agg := report.NewAggregator(s.store.Snapshot())
	writeJSON(w, http.StatusOK, agg.Summarize(parsePeriod(r)))
}

type financingSummary struct {
	Financing    core.Financing          `json:"financing"`
	Amortization report.Amortization     `json:"amortization"`
	Payments     []core.FinancingPayment `json:"payments"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.SortedGoals(s.store.Snapshot().Goals))
}

func (s *Server) handleFinancingSummary(w http.ResponseWriter, r *http.Request) {
	f, ok := s.store.Financing(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "financing not found"})
		return
	}

	writeJSON(w, http.StatusOK, financingSummary{
		Financing:    f,
		Amortization: report.Amortize(f),
		Payments:     report.SortedPayments(f),
	})
}
