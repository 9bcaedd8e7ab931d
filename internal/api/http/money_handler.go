package http

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Munazil1/centswise/internal/domain"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.money.Dashboard(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Refresh reconciles every collection before answering with the new
// dashboard.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.money.Refresh(r.Context()); err != nil {
		fail(w, err)
		return
	}
	h.Dashboard(w, r)
}

func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.money.ListCredits(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"credits": credits})
}

func (h *Handler) RecordCredit(w http.ResponseWriter, r *http.Request) {
	var draft domain.CreditDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		fail(w, err)
		return
	}
	credit, err := h.money.RecordCredit(r.Context(), draft)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"credit": credit})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.money.ListExpenses(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *Handler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var draft domain.ExpenseDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		fail(w, err)
		return
	}
	expense, err := h.money.RecordExpense(r.Context(), draft)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"expense": expense})
}

func (h *Handler) NextReceiptNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.money.NextReceiptNumber(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"receiptNumber": next})
}

func (h *Handler) IssueReceipt(w http.ResponseWriter, r *http.Request) {
	rcpt, err := h.receipts.Issue(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"receipt": rcpt})
}

func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receipts.ListReceipts(r.Context(), listQuery(r))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"receipts": receipts})
}

func (h *Handler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]
	rc, size, err := h.receipts.OpenArchived(r.Context(), serial)
	if err != nil {
		fail(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": serial + ".pdf"}))
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// listQuery reads the ledger service's list filters from the query string.
func listQuery(r *http.Request) domain.ListQuery {
	v := r.URL.Query()
	page, _ := strconv.Atoi(v.Get("page"))
	perPage, _ := strconv.Atoi(v.Get("per_page"))
	return domain.ListQuery{
		Search:    v.Get("search"),
		Category:  v.Get("category"),
		Status:    v.Get("status"),
		StartDate: v.Get("start_date"),
		EndDate:   v.Get("end_date"),
		Page:      page,
		PerPage:   perPage,
	}
}
