package scoring

// Category labels in ascending score order.
const (
	CategoryPoor      = "Poor"
	CategoryFair      = "Fair"
	CategoryGood      = "Good"
	CategoryVeryGood  = "Very Good"
	CategoryExcellent = "Excellent"
)

// band is one classification bucket: scores strictly below Upper that did
// not match an earlier band fall into it.
type band struct {
	upper    int
	category string
	color    string
}

// Classification cut points. Lower bounds are inclusive, upper bounds
// exclusive; the Excellent bucket is open-ended.
var bands = []band{
	{upper: 580, category: CategoryPoor, color: "red"},
	{upper: 670, category: CategoryFair, color: "orange"},
	{upper: 740, category: CategoryGood, color: "green"},
	{upper: 800, category: CategoryVeryGood, color: "blue"},
}

// Classify buckets a score into its category label and display color.
// Evaluated in ascending order, first match wins.
func Classify(score int) (category, color string) {
	for _, b := range bands {
		if score < b.upper {
			return b.category, b.color
		}
	}
	return CategoryExcellent, "purple"
}

// Progress maps a score onto the dashboard progress bar as score/ScoreCeil,
// clamped to [0,1].
func Progress(score int) float64 {
	p := float64(score) / ScoreCeil
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
