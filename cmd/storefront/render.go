package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/niksmo/storefront/internal/adapter/session"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

func renderSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

func renderMuted(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

func renderProducts(w io.Writer, ps []domain.Product) {
	if len(ps) == 0 {
		renderMuted(w, "No products found.")
		return
	}

	t := newTable("ID", "Name", "Category", "Price", "Stock", "Image")
	for _, p := range ps {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		stock := strconv.Itoa(p.Stock)
		if !p.InStock() {
			stock = "Out of stock"
		}
		t.Row(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			category,
			money(p.Price),
			stock,
			p.PrimaryImage(),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func renderCategories(w io.Writer, cs []domain.Category) {
	if len(cs) == 0 {
		renderMuted(w, "No categories.")
		return
	}

	t := newTable("ID", "Name", "Slug")
	for _, c := range cs {
		t.Row(strconv.FormatInt(c.ID, 10), c.Name, c.Slug)
	}
	fmt.Fprintln(w, t.Render())
}

func renderCart(w io.Writer, c domain.Cart) {
	if c.Empty() {
		renderMuted(w, "Your cart is empty.")
		return
	}

	t := newTable("Item", "Product", "Price", "Qty", "Total")
	for _, it := range c.Items {
		t.Row(
			strconv.FormatInt(it.ID, 10),
			it.Product.Name,
			money(it.PriceSnapshot)+" each",
			strconv.Itoa(it.Quantity),
			money(it.LineTotal()),
		)
	}
	fmt.Fprintln(w, t.Render())

	shipping := "Free"
	if !c.Shipping().IsZero() {
		shipping = money(c.Shipping())
	}
	fmt.Fprintf(w, "Subtotal  %s\n", money(c.Subtotal()))
	fmt.Fprintf(w, "Shipping  %s\n", shipping)
	fmt.Fprintln(w, titleStyle.Render("Total     "+money(c.Total())))
}

func renderOrders(w io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		renderMuted(w, "No orders yet.")
		return
	}

	t := newTable("Order", "Placed", "Status", "Items", "Subtotal", "Deliver to")
	for _, o := range orders {
		var units int
		for _, it := range o.Items {
			units += it.Quantity
		}
		placed := ""
		if !o.CreatedAt.IsZero() {
			placed = o.CreatedAt.Local().Format(time.DateTime)
		}
		t.Row(
			strconv.FormatInt(o.ID, 10),
			placed,
			o.Status,
			strconv.Itoa(units),
			money(o.Subtotal),
			o.Delivery.FullName+", "+o.Delivery.City,
		)
	}
	fmt.Fprintln(w, t.Render())
}

func renderSession(w io.Writer, info session.TokenInfo, now time.Time) {
	fmt.Fprintln(w, titleStyle.Render("Logged in"))
	if info.UserID != "" {
		fmt.Fprintf(w, "User ID   %s\n", info.UserID)
	}
	if info.Subject != "" {
		fmt.Fprintf(w, "Subject   %s\n", info.Subject)
	}
	if info.ExpiresAt.IsZero() {
		return
	}

	expires := info.ExpiresAt.Local().Format(time.DateTime)
	if info.Expired(now) {
		fmt.Fprintln(w, failureStyle.Render("Expired   "+expires+", please login again"))
		return
	}
	fmt.Fprintf(w, "Expires   %s\n", expires)
}
