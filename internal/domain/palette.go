package domain

// ColorOption is a project bar fill with its matching border.
type ColorOption struct {
	Color       string
	BorderColor string
}

// ColorOptions is the palette new projects draw from.
var ColorOptions = []ColorOption{
	{Color: "teal", BorderColor: "teal-dark"},
	{Color: "orange", BorderColor: "orange-dark"},
	{Color: "red", BorderColor: "red-dark"},
	{Color: "yellow", BorderColor: "yellow-dark"},
	{Color: "indigo", BorderColor: "indigo-dark"},
	{Color: "purple", BorderColor: "purple-dark"},
	{Color: "pink", BorderColor: "pink-dark"},
	{Color: "blue", BorderColor: "blue-dark"},
}

var taskShades = map[string]string{
	"teal":   "teal-light",
	"orange": "orange-light",
	"red":    "red-light",
	"yellow": "yellow-light",
	"indigo": "indigo-light",
	"purple": "purple-light",
	"pink":   "pink-light",
	"blue":   "blue-light",
}

// TaskBarColor returns the lighter shade used for tasks of a project with
// the given color. Unknown colors are returned unchanged.
func TaskBarColor(projectColor string) string {
	if c, ok := taskShades[projectColor]; ok {
		return c
	}
	return projectColor
}
