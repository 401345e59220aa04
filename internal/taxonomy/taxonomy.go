// Package taxonomy holds the fixed catalog of harness failure codes.
// The catalog is domain data, not behavior: it is built once at init and
// never mutated afterward.
package taxonomy

// Category classifies a failure into one of the fixed harness buckets.
type Category string

const (
	CategoryData        Category = "DATA"
	CategoryElement     Category = "ELEMENT"
	CategoryNavigation  Category = "NAVIGATION"
	CategoryAssertion   Category = "ASSERTION"
	CategoryNetwork     Category = "NETWORK"
	CategoryAuth        Category = "AUTH"
	CategoryPerformance Category = "PERFORMANCE"
	CategoryVisual      Category = "VISUAL"
	CategoryAPI         Category = "API"
	CategoryFramework   Category = "FRAMEWORK"
	CategoryUnknown     Category = "UNKNOWN"
)

// Known reports whether the category is part of the fixed enumeration.
func (c Category) Known() bool {
	switch c {
	case CategoryData, CategoryElement, CategoryNavigation, CategoryAssertion,
		CategoryNetwork, CategoryAuth, CategoryPerformance, CategoryVisual,
		CategoryAPI, CategoryFramework, CategoryUnknown:
		return true
	}
	return false
}

// Entry is a single catalog entry. Codes are globally unique and namespaced
// by category via numeric range (1000s data, 2000s element, 3000s navigation,
// 4000s assertion, 5000s network, 6000s auth, 7000s performance, 8000s visual,
// 9000s api, 10000s framework, 99999 unknown).
type Entry struct {
	Code     int
	Category Category
	Title    string
	Message  string
}

// Data errors (1000s): bad or missing test input.
var (
	DataMissing = Entry{Code: 1001, Category: CategoryData, Title: "Missing test data", Message: "Required test data was not provided"}
	DataInvalid = Entry{Code: 1002, Category: CategoryData, Title: "Invalid test data", Message: "Test data failed validation"}
	DataParse   = Entry{Code: 1003, Category: CategoryData, Title: "Test data parse failure", Message: "Test data file could not be parsed"}
)

// Element errors (2000s): UI element state problems.
var (
	ElementNotFound     = Entry{Code: 2001, Category: CategoryElement, Title: "Element not found", Message: "Element matching the selector does not exist"}
	ElementNotVisible   = Entry{Code: 2002, Category: CategoryElement, Title: "Element not visible", Message: "Element exists but is not visible"}
	ElementNotClickable = Entry{Code: 2003, Category: CategoryElement, Title: "Element not clickable", Message: "Element could not receive the click"}
	ElementWrongState   = Entry{Code: 2004, Category: CategoryElement, Title: "Element in wrong state", Message: "Element is not in the state the action requires"}
	ElementTimeout      = Entry{Code: 2005, Category: CategoryElement, Title: "Element wait timed out", Message: "Timed out waiting for the element"}
	ElementTextRead     = Entry{Code: 2006, Category: CategoryElement, Title: "Element text unreadable", Message: "Element text content could not be read"}
)

// Navigation errors (3000s): navigation and page-load failures.
var (
	NavigationFailed  = Entry{Code: 3001, Category: CategoryNavigation, Title: "Navigation failed", Message: "Browser failed to navigate to the target URL"}
	NavigationTimeout = Entry{Code: 3002, Category: CategoryNavigation, Title: "Navigation timed out", Message: "Navigation did not complete within the timeout"}
	PageLoadFailed    = Entry{Code: 3003, Category: CategoryNavigation, Title: "Page load failed", Message: "Page did not reach a usable load state"}
)

// Assertion errors (4000s).
var (
	AssertionFailed       = Entry{Code: 4001, Category: CategoryAssertion, Title: "Assertion failed", Message: "Asserted condition did not hold"}
	AssertionTextMismatch = Entry{Code: 4002, Category: CategoryAssertion, Title: "Text mismatch", Message: "Element text did not match the expected value"}
)

// Network errors (5000s).
var (
	NetworkTimeout       = Entry{Code: 5001, Category: CategoryNetwork, Title: "Network timeout", Message: "Network operation exceeded its deadline"}
	NetworkRequestFailed = Entry{Code: 5002, Category: CategoryNetwork, Title: "Network request failed", Message: "Underlying network request failed"}
)

// Auth errors (6000s).
var (
	AuthLoginFailed    = Entry{Code: 6001, Category: CategoryAuth, Title: "Login failed", Message: "Authentication flow did not complete"}
	AuthSessionExpired = Entry{Code: 6002, Category: CategoryAuth, Title: "Session expired", Message: "Session was no longer valid during the test"}
)

// Performance errors (7000s).
var (
	PerformanceBudget = Entry{Code: 7001, Category: CategoryPerformance, Title: "Performance budget exceeded", Message: "Measured duration exceeded the configured threshold"}
)

// Visual errors (8000s).
var (
	VisualMismatch = Entry{Code: 8001, Category: CategoryVisual, Title: "Visual regression", Message: "Rendered page did not match the baseline"}
)

// API errors (9000s).
var (
	APIUnexpectedStatus = Entry{Code: 9001, Category: CategoryAPI, Title: "Unexpected API status", Message: "API responded with an unexpected status code"}
	APISchemaMismatch   = Entry{Code: 9002, Category: CategoryAPI, Title: "API schema mismatch", Message: "API response did not match the expected shape"}
)

// Framework errors (10000s): harness and configuration problems.
var (
	FrameworkConfigInvalid = Entry{Code: 10001, Category: CategoryFramework, Title: "Invalid configuration", Message: "Harness configuration is invalid"}
	FrameworkBrowserStart  = Entry{Code: 10002, Category: CategoryFramework, Title: "Browser start failed", Message: "Browser instance could not be started"}
)

// Unknown is the catch-all bucket for failures no other entry covers.
var Unknown = Entry{Code: 99999, Category: CategoryUnknown, Title: "Unknown error", Message: "Unclassified failure"}

// catalog is built once at init; there is no registration API.
var catalog = []Entry{
	DataMissing, DataInvalid, DataParse,
	ElementNotFound, ElementNotVisible, ElementNotClickable, ElementWrongState, ElementTimeout, ElementTextRead,
	NavigationFailed, NavigationTimeout, PageLoadFailed,
	AssertionFailed, AssertionTextMismatch,
	NetworkTimeout, NetworkRequestFailed,
	AuthLoginFailed, AuthSessionExpired,
	PerformanceBudget,
	VisualMismatch,
	APIUnexpectedStatus, APISchemaMismatch,
	FrameworkConfigInvalid, FrameworkBrowserStart,
	Unknown,
}

var byCode = func() map[int]Entry {
	m := make(map[int]Entry, len(catalog))
	for _, e := range catalog {
		m[e.Code] = e
	}
	return m
}()

// All returns a copy of every catalog entry.
func All() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the entry for a numeric code, or Unknown if the code is not
// in the catalog.
func Lookup(code int) Entry {
	if e, ok := byCode[code]; ok {
		return e
	}
	return Unknown
}

// Categories returns every category in the enumeration, in declaration order.
func Categories() []Category {
	return []Category{
		CategoryData, CategoryElement, CategoryNavigation, CategoryAssertion,
		CategoryNetwork, CategoryAuth, CategoryPerformance, CategoryVisual,
		CategoryAPI, CategoryFramework, CategoryUnknown,
	}
}
