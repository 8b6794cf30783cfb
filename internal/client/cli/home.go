package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

// Home renders the home screen for the current user. It prints nothing
// when nobody is logged in.
func (a *App) Home(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		return nil
	}
	return RenderHome(a.out, *u)
}

// RenderHome writes the home screen for u to w.
func RenderHome(w io.Writer, u models.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "[%s]\n", Initials(u.Name))
	fmt.Fprintln(tw, "Welcome back!")
	fmt.Fprintln(tw, u.Name)
	fmt.Fprintln(tw, "You are successfully logged in")
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Full Name\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email Address\t%s\n", u.Email)
	fmt.Fprintf(tw, "User ID\t%s\n", u.ID)
	fmt.Fprintln(tw, "Account Verified")

	return tw.Flush()
}
