package remote

import (
	"context"
	"net/http"

	"github.com/Munazil1/centswise/internal/domain"
)

func (c *Client) DashboardMetrics(ctx context.Context) (domain.RemoteMetrics, error) {
	var out metricsRecord
	if err := c.do(ctx, "DashboardMetrics", http.MethodGet, "/dashboard/metrics", nil, nil, &out); err != nil {
		return domain.RemoteMetrics{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) Balance(ctx context.Context) (domain.Balance, error) {
	var out balanceRecord
	if err := c.do(ctx, "Balance", http.MethodGet, "/money/balance", nil, nil, &out); err != nil {
		return domain.Balance{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) ListCredits(ctx context.Context, q domain.ListQuery) ([]domain.Credit, error) {
	var out struct {
		Credits []creditRecord `json:"credits"`
	}
	if err := c.do(ctx, "ListCredits", http.MethodGet, "/money/credits", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	now := c.now()
	credits := make([]domain.Credit, 0, len(out.Credits))
	for _, r := range out.Credits {
		credits = append(credits, r.toDomain(now))
	}
	return credits, nil
}

func (c *Client) CreateCredit(ctx context.Context, d domain.CreditDraft) (domain.Credit, error) {
	var out struct {
		Credit creditRecord `json:"credit"`
	}
	if err := c.do(ctx, "CreateCredit", http.MethodPost, "/money/credits", nil, newCreditRequest(d), &out); err != nil {
		return domain.Credit{}, err
	}
	return out.Credit.toDomain(c.now()), nil
}

func (c *Client) ListExpenses(ctx context.Context, q domain.ListQuery) ([]domain.Expense, error) {
	var out struct {
		Expenses []expenseRecord `json:"expenses"`
	}
	if err := c.do(ctx, "ListExpenses", http.MethodGet, "/money/expenses", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, 0, len(out.Expenses))
	for _, r := range out.Expenses {
		expenses = append(expenses, r.toDomain())
	}
	return expenses, nil
}

func (c *Client) CreateExpense(ctx context.Context, d domain.ExpenseDraft) (domain.Expense, error) {
	var out struct {
		Expense expenseRecord `json:"expense"`
	}
	if err := c.do(ctx, "CreateExpense", http.MethodPost, "/money/expenses", nil, newExpenseRequest(d), &out); err != nil {
		return domain.Expense{}, err
	}
	return out.Expense.toDomain(), nil
}
