package main

const demoWorkspaceName = "Oral Care Demo"

type seedNote struct {
	Title   string
	Content string
}

var demoNotes = []seedNote{
	{
		Title:   "Retail buyer call",
		Content: "The buyer said charcoal SKUs are slowing down. Shoppers ask for enamel repair and sensitivity relief instead of whitening.",
	},
	{
		Title:   "Dentist panel",
		Content: "Dentists recommend fluoride for cavity protection. Several were skeptical of natural and fluoride-free positioning.",
	},
}

const demoReviewsFile = "demo_reviews.csv"

const demoReviews = `brand,review_text,rating,date
Colgate,Great whitening after two weeks and fresh breath all day,5,2024-01-08
Colgate,Too abrasive and my sensitivity got worse,2,2024-01-21
Colgate,Solid cavity protection and the price is fair,4,2024-02-11
Crest,Love the enamel repair formula,5,2024-01-15
Crest,Terrible aftertaste but good plaque removal,3,2024-02-02
Hello,Natural and fluoride-free which my kids like,4,2024-01-30
Hello,Charcoal made a mess of the sink and did nothing for whitening,1,2024-02-19
`

// demoScorecard factor weights; a nil weight takes the default.
var demoFactors = []struct {
	Name     string
	Keywords []string
	Weight   *float64
}{
	{Name: "Whitening", Keywords: []string{"whitening", "white"}},
	{Name: "Sensitivity", Keywords: []string{"sensitivity", "sensitive"}, Weight: float64Ptr(2)},
	{Name: "Taste", Keywords: []string{"taste", "aftertaste", "fresh"}},
}

func float64Ptr(v float64) *float64 { return &v }
