// Package viewmodel holds the template-facing shapes shared by every page.
package viewmodel

// User represents the signed-in user shown in the header.
type User struct {
	Name  string
	Email string
	Role  string
}

// NavItem is one entry in the dashboard side navigation.
type NavItem struct {
	Label  string
	Href   string
	Page   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
}

// DashboardNav returns the side navigation with the current page marked active.
func DashboardNav(currentPage string) []NavItem {
	items := []NavItem{
		{Label: "Overview", Href: "/dashboard", Page: "dashboard"},
		{Label: "Invoices", Href: "/dashboard/invoices", Page: "invoices"},
	}
	for i := range items {
		items[i].Active = items[i].Page == currentPage ||
			(currentPage == "invoice-create" && items[i].Page == "invoices")
	}
	return items
}
