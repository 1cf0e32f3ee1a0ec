package route

import "strings"

// Route declares a navigable view and the role names allowed to see it.
// An empty AllowedRoles means any authenticated session may enter.
type Route struct {
	Path         string
	AllowedRoles []string
}

// supportOnly mirrors the deployed route table: the general dashboard, user
// directory and reports are restricted; tickets and tasks are common areas.
var supportOnly = []string{"SOPORTE", "DIRECCION GENERAL"}

var table = []Route{
	{Path: "/", AllowedRoles: supportOnly},
	{Path: "/users", AllowedRoles: supportOnly},
	{Path: "/users/new", AllowedRoles: supportOnly},
	{Path: "/reports", AllowedRoles: supportOnly},

	{Path: "/tickets"},
	{Path: "/tickets/new"},
	{Path: "/tickets/:id"},

	{Path: "/my-tasks"},
	{Path: "/my-tasks/new"},
	{Path: "/my-tasks/assigned"},
	{Path: "/my-tasks/delegated"},
	{Path: "/my-tasks/personal"},
	{Path: "/my-tasks/:id"},

	{Path: "/settings"},
}

// Lookup matches a concrete path against the table. ":id" segments match any
// single non-empty segment. Literal routes win over parameterized ones.
func Lookup(path string) (Route, bool) {
	path = normalize(path)
	var param Route
	var paramOK bool
	for _, r := range table {
		if r.Path == path {
			return r, true
		}
		if !paramOK && matchParam(r.Path, path) {
			param, paramOK = r, true
		}
	}
	return param, paramOK
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func matchParam(pattern, path string) bool {
	if !strings.Contains(pattern, ":") {
		return false
	}
	ps := strings.Split(pattern, "/")
	xs := strings.Split(path, "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
