package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/models"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) Dashboard(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		a.printf("Please log in first\n")
		return errNotLoggedIn
	}

	d, err := a.dashboard.Summary(ctx)
	if err != nil {
		a.printf("Could not load dashboard: %s\n", failureMessage(err))
		return err
	}

	a.printf("Orders: %d  Pending: %d  Completed courses: %d  Total spent: %s\n",
		d.TotalOrders, d.PendingOrders, d.CompletedCourses, money(d.TotalSpent))
	for _, o := range d.Orders {
		a.printf("%-36s  %-9s  %9s  %s\n", o.ID, o.Status, money(o.Amount), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *App) ShowOrder(ctx context.Context, id string) error {
	if !a.isLoggedIn(ctx) {
		a.printf("Please log in first\n")
		return errNotLoggedIn
	}

	o, err := a.dashboard.Order(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.printf("Order not found\n")
		} else {
			a.printf("Could not load order: %s\n", failureMessage(err))
		}
		return err
	}

	a.printOrder(o)
	return nil
}

func (a *App) printOrder(o *models.Order) {
	a.printf("Order %s\n", o.ID)
	a.printf("  status:  %s\n", o.Status)
	a.printf("  placed:  %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	for _, it := range o.Courses {
		a.printf("  - %-32s  %9s\n", it.Title, money(it.Price))
	}
	a.printf("  amount:  %s\n", money(o.Amount))
}
