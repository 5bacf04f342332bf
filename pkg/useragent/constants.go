package useragent

// Category is a classification axis. Result slots are keyed by category name.
type Category string

// Built-in categories in evaluation order.
const (
	// CategoryOS identifies the platform operating system (Windows, Linux, iOS, ...)
	CategoryOS Category = "os"

	// CategoryDist identifies an OS distribution or device family (Ubuntu, Android, iPhone, ...)
	CategoryDist Category = "dist"

	// CategoryFlavor identifies an OS flavor (MacOS)
	CategoryFlavor Category = "flavor"

	// CategoryBrowser identifies the agent: browsers, bots, HTTP libraries and apps
	CategoryBrowser Category = "browser"
)

// builtinCategories is the initial category order of every registry.
var builtinCategories = []Category{CategoryOS, CategoryDist, CategoryFlavor, CategoryBrowser}

// DefaultPriority is the priority of rules that do not declare one. It places
// a new category after the built-in ones.
const DefaultPriority = 10

// Aggregation sentinels
const (
	// UnknownOS is the OS name reported when no OS-related slot matched
	UnknownOS = "Unknown OS"

	// UnknownBrowser is the agent name reported when no agent rule matched
	UnknownBrowser = "Unknown Browser"
)

// String returns the category name.
func (c Category) String() string { return string(c) }
