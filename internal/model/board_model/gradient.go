package board_model

// Gradient classes the dashboard cycles through for board tiles.
var gradients = []string{
	"bg-gradient-to-br from-purple-600 to-blue-500",
	"bg-gradient-to-br from-pink-500 to-rose-500",
	"bg-gradient-to-br from-emerald-500 to-teal-400",
	"bg-gradient-to-br from-orange-400 to-red-500",
	"bg-gradient-to-br from-blue-400 to-indigo-600",
}

// GradientFor picks a stable gradient for a board id. Pure function of the
// id: the same board always gets the same gradient.
func GradientFor(id string) string {
	if id == "" {
		return gradients[0]
	}
	charCode := int(id[0]) + int(id[len(id)-1])
	return gradients[charCode%len(gradients)]
}
