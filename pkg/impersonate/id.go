package impersonate

// Id is the closed, user-facing selector for a named browser build
// (spec.md §3, ImpersonationId). The set is versioned; adding a browser
// version is a table extension in this package, never a new type.
type Id string

const (
	Chrome100 Id = "Chrome100"
	Chrome110 Id = "Chrome110"
	Chrome117 Id = "Chrome117"
	Chrome120 Id = "Chrome120"
	Chrome124 Id = "Chrome124"
	Chrome131 Id = "Chrome131"

	Edge101 Id = "Edge101"
	Edge106 Id = "Edge106"
	Edge127 Id = "Edge127"

	SafariMacos15_3 Id = "SafariMacos15_3"
	SafariIos17_4_1 Id = "SafariIos17_4_1"
	SafariIpad18    Id = "SafariIpad18"

	OkHttp3_9 Id = "OkHttp3_9"
	OkHttp4   Id = "OkHttp4"
	OkHttp5   Id = "OkHttp5"

	Firefox109 Id = "Firefox109"
	Firefox117 Id = "Firefox117"
)
