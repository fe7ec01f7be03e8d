package cli

import (
	"strings"

	"github.com/dmitrijs2005/lifemgmt/internal/common"
)

// View is a screen the client can show.
type View struct {
	Path      string
	Title     string
	Protected bool
}

var views = []View{
	{Path: common.DefaultViewPath, Title: "Dashboard", Protected: true},
	{Path: "/finances", Title: "Finances", Protected: true},
	{Path: "/health", Title: "Health", Protected: true},
	{Path: "/home", Title: "Home", Protected: true},
	{Path: "/social", Title: "Social", Protected: true},
	{Path: common.LoginViewPath, Title: "Login"},
	{Path: "/register", Title: "Register"},
	{Path: "/forgot-password", Title: "Forgot password"},
	{Path: "/reset-password", Title: "Reset password"},
}

// lookupView resolves a user-typed view name ("finances", "/finances",
// "dashboard") to a View.
func lookupView(name string) (View, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "dashboard" || name == "/dashboard" {
		name = common.DefaultViewPath
	}
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	for _, v := range views {
		if v.Path == name {
			return v, true
		}
	}
	return View{}, false
}

// IsProtected reports whether the view at path requires a session.
func IsProtected(path string) bool {
	v, ok := lookupView(path)
	return ok && v.Protected
}

func viewNames() string {
	names := make([]string, 0, len(views))
	for _, v := range views {
		if v.Path == common.DefaultViewPath {
			names = append(names, "dashboard")
			continue
		}
		names = append(names, strings.TrimPrefix(v.Path, "/"))
	}
	return strings.Join(names, ", ")
}
