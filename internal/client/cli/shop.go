package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/services"
)

// Courses prints the catalog.
func (a *App) Courses(ctx context.Context) error {
	courses, err := a.catalog.List(ctx)
	if err != nil {
		a.printf("Could not load courses: %s\n", failureMessage(err))
		return err
	}
	if len(courses) == 0 {
		a.printf("No courses available\n")
		return nil
	}

	for _, c := range courses {
		a.printf("%-36s  %-32s  %9s  %s\n", c.ID, c.Title, money(c.Price), c.Category)
	}
	return nil
}

func (a *App) AddToCart(ctx context.Context, id string) error {
	course, err := a.catalog.Find(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.printf("Course %s not found\n", id)
		} else {
			a.printf("Could not load courses: %s\n", failureMessage(err))
		}
		return err
	}

	added, err := a.cart.Add(ctx, *course)
	if err != nil {
		a.printf("Could not update cart: %s\n", err)
		return err
	}
	if !added {
		a.printf("%s is already in your cart\n", course.Title)
		return nil
	}
	a.printf("Added %s to your cart\n", course.Title)
	return nil
}

func (a *App) RemoveFromCart(ctx context.Context, id string) error {
	removed, err := a.cart.Remove(ctx, id)
	if err != nil {
		a.printf("Could not update cart: %s\n", err)
		return err
	}
	if !removed {
		a.printf("Course %s is not in your cart\n", id)
		return nil
	}
	a.printf("Removed %s from your cart\n", id)
	return nil
}

// Cart prints the cart contents and total.
func (a *App) Cart(ctx context.Context) error {
	items, err := a.cart.Items(ctx)
	if err != nil {
		a.printf("Could not read cart: %s\n", err)
		return err
	}
	if len(items) == 0 {
		a.printf("Your cart is empty\n")
		return nil
	}

	for _, c := range items {
		a.printf("%-36s  %-32s  %9s\n", c.ID, c.Title, money(c.Price))
	}
	total, err := a.cart.Total(ctx)
	if err != nil {
		return err
	}
	a.printf("Total: %s\n", money(total))
	return nil
}

// Checkout places an order for the cart. On failure the cart is left as it
// was so the user can retry.
func (a *App) Checkout(ctx context.Context) error {
	order, err := a.cart.Checkout(ctx)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrLoginRequired):
		a.printf("Please log in to check out\n")
		return err
	case errors.Is(err, services.ErrEmptyCart):
		a.printf("Your cart is empty\n")
		return err
	default:
		a.logger.Warn(ctx, "checkout failed", "error", err)
		a.printf("Checkout failed. Please try again.\n")
		return err
	}

	a.printf("Order %s placed (%s), total %s\n", order.ID, order.Status, money(order.Amount))
	return nil
}
