package http

import (
	"net/http"

	"financepro/internal/core"
)

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	var in core.Income
	if err := readJSON(r, &in); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddIncome(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteIncome(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := readJSON(r, &e); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddExpense(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteExpense(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddFinancing(w http.ResponseWriter, r *http.Request) {
	var f core.Financing
	if err := readJSON(r, &f); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddFinancing(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteFinancing(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteFinancing(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	var p core.FinancingPayment
	if err := readJSON(r, &p); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddPayment(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	s.store.DeletePayment(r.Context(), r.PathValue("id"), r.PathValue("paymentID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if err := readJSON(r, &g); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddGoal(r.Context(), g)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteGoal(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWish(w http.ResponseWriter, r *http.Request) {
	var wish core.Wish
	if err := readJSON(r, &wish); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddWish(r.Context(), wish)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteWish(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteWish(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddInvestment(w http.ResponseWriter, r *http.Request) {
	var inv core.Investment
	if err := readJSON(r, &inv); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddInvestment(r.Context(), inv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteInvestment(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var c core.InvestmentContribution
	if err := readJSON(r, &c); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := s.store.AddContribution(r.Context(), r.PathValue("id"), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteContribution(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteContribution(r.Context(), r.PathValue("id"), r.PathValue("contributionID"))
	w.WriteHeader(http.StatusNoContent)
}
