package resource

func floatPtr(v float64) *float64 { return &v }

var (
	ratingMin = floatPtr(1)
	ratingMax = floatPtr(5)
)

// Definitions lists every generic entity served by the resource engine, in
// route-mount order.
var Definitions = []Definition{
	{
		Name:       "new-goals",
		Collection: "new_goals",
		IDFilter:   "employeeId",
		NameFilter: "employee",
		Fields: []Field{
			{Name: "goal", Required: true},
			{Name: "progress", Default: ""},
			{Name: "isGroup", Kind: KindBool, Default: false},
			{Name: "status", Enum: []string{"Pending", "Preparing", "Completed"}, Default: "Pending"},
			{Name: "employee", Required: true},
			{Name: "employeeId", Default: ""},
			{Name: "company", Default: ""},
			{Name: "description", Default: ""},
		},
	},
	{
		Name:       "feedback",
		Collection: "feedback",
		IDFilter:   "employeeId",
		NameFilter: "employee",
		Fields: []Field{
			{Name: "feedback", Required: true},
			{Name: "development"},
			{Name: "strengths"},
			{Name: "rating", Kind: KindNumber, Required: true, Min: ratingMin, Max: ratingMax},
			{Name: "employee", Required: true},
			{Name: "employeeId", Required: true},
		},
	},
	{
		Name:       "feedback1",
		Collection: "feedback1",
		IDFilter:   "employeeId",
		NameFilter: "employee",
		Fields: []Field{
			{Name: "feedback", Required: true},
			{Name: "development", Default: ""},
			{Name: "strengths", Default: ""},
			{Name: "rating", Kind: KindNumber, Required: true, Min: ratingMin, Max: ratingMax, Integer: true},
			{Name: "editing", Kind: KindBool, Default: false},
			{Name: "employee"},
			{Name: "employeeId"},
		},
	},
	{
		Name:       "pips",
		Collection: "pips",
		IDFilter:   "employeeId",
		NameFilter: "employee",
		Fields: []Field{
			{Name: "employee", Required: true},
			{Name: "employeeId", Default: ""},
			{Name: "dateIssued", Required: true},
			{Name: "reason", Default: ""},
			{Name: "targets", Default: ""},
			{Name: "comments", Default: ""},
		},
	},
	{
		Name:       "promotions",
		Collection: "promotions",
		IDFilter:   "employeeId",
		NameFilter: "name",
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "date", Required: true},
			{Name: "currency", Default: "INR"},
			{Name: "company", Default: ""},
			{Name: "justification", Default: ""},
			{Name: "property", Required: true},
			{Name: "current", Default: ""},
			{Name: "newValue", Required: true},
			{Name: "employeeId"},
		},
	},
	{
		Name:       "onboarding",
		Collection: "onboarding",
		IDFilter:   "employeeId",
		NameFilter: "fullName",
		Fields: []Field{
			{Name: "fullName", Required: true},
			{Name: "employeeId", Default: ""},
			{Name: "workEmail", Required: true, Lowercase: true},
			{Name: "hireDate"},
			{Name: "department", Default: ""},
			{Name: "reportingManager", Default: ""},
			{Name: "addedOn"},
		},
	},
	{
		Name:       "annual-reports",
		Collection: "annual_reports",
		IDFilter:   "employeeId",
		NameFilter: "employeeName",
		Fields: []Field{
			{Name: "employeeName", Required: true},
			{Name: "jobTitle", Default: ""},
			{Name: "department", Default: ""},
			{Name: "reviewPeriod", Default: "Jan 1, 2024 - Dec 31, 2024"},
			{Name: "managerName", Required: true},
			{Name: "dateOfReview", Default: ""},
			{Name: "achievements", Default: ""},
			{Name: "developmentGoals", Default: ""},
			{Name: "performanceRating", Default: ""},
			{Name: "managerComments", Default: ""},
			{Name: "competencies", Kind: KindList},
			{Name: "employeeId"},
		},
	},
	{
		Name:       "employee-details",
		Collection: "employee_details",
		IDFilter:   "employeeId",
		NameFilter: "employee",
		Fields: []Field{
			{Name: "employee", Required: true},
			{Name: "reviewer", Required: true},
			{Name: "addedOnInput", Required: true},
			{Name: "addedOn", Required: true},
			{Name: "company", Default: "S"},
			{Name: "rating", Enum: []string{"Outstanding", "Excellent", "Satisfactory", "Need Improvement", "Poor", ""}, Default: ""},
			{Name: "employeeId"},
		},
	},
	{
		Name:       "user-views",
		Collection: "user_views",
		IDFilter:   "userId",
		NameFilter: "userName",
		Fields: []Field{
			{Name: "userId", Required: true},
			{Name: "userName", Required: true},
			{Name: "employeeId"},
			{Name: "role", Default: "Data Analyst"},
			{Name: "department", Default: "Tech"},
			{Name: "performance", Default: "Excellent"},
			{Name: "q2Score", Kind: KindNumber, Default: float64(85)},
			{Name: "q1GoalsMet", Kind: KindNumber, Default: float64(4)},
			{Name: "q2GoalsMet", Kind: KindNumber, Default: float64(3)},
			{Name: "contacts", Kind: KindList},
			{Name: "documents", Kind: KindList},
		},
	},
	{
		Name:       "overview",
		Collection: "overview",
		IDFilter:   "employeeId",
		NameFilter: "employee",
		Fields: []Field{
			{Name: "series"},
			{Name: "employee"},
			{Name: "employeeId"},
			{Name: "company"},
			{Name: "appraisalCycle"},
		},
	},
}

// DefinitionByName resolves a route segment to its entity definition.
func DefinitionByName(name string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
